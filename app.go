// app.go
package main

import (
	"fmt"
	"html/template"
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var tmplFuncs = template.FuncMap{
	// render stored lesson HTML without escaping
	"safe": func(v any) template.HTML {
		switch x := v.(type) {
		case template.HTML:
			return x
		case string:
			return template.HTML(x)
		default:
			return template.HTML(fmt.Sprint(x))
		}
	},

	// a + b
	"add": func(a, b int) int {
		return a + b
	},

	// truncate a string for list views
	"truncate": func(s string, n int) string {
		if n <= 0 || len(s) <= n {
			return s
		}
		if n <= 1 {
			return s[:n]
		}
		return s[:n-1] + "…"
	},
}

// App carries everything a handler needs. Handlers are methods so tests
// can build an App against an in-memory store.
type App struct {
	db  *gorm.DB
	log *zap.SugaredLogger
	cfg Config
}

func newApp(cfg Config, logger *zap.SugaredLogger, db *gorm.DB) *App {
	return &App{db: db, log: logger, cfg: cfg}
}

// ---------- DB and migrations ----------

func openDB(cfg Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}
	if cfg.DatabaseURL != "" {
		return gorm.Open(postgres.Open(cfg.DatabaseURL), gormCfg)
	}
	// local runs without a Postgres around
	return gorm.Open(sqlite.Open("ecolearn.db"), gormCfg)
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Lesson{},
		&Quiz{},
		&Challenge{},
		&UserProgress{},
		&UserChallenge{},
		&Badge{},
		&UserBadge{},
	)
}

// ---------- Template loading ----------

func loadTemplates() *template.Template {
	return template.Must(template.New("").Funcs(tmplFuncs).ParseGlob("templates/*.html"))
}

// ---------- Router ----------

func (a *App) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.SetHTMLTemplate(loadTemplates())
	r.Static("/static", "./static")

	store := cookie.NewStore([]byte(a.cfg.SessionSecret))
	r.Use(sessions.Sessions("ecolearn_session", store))

	a.registerAuthRoutes(r)
	a.registerLessonRoutes(r)
	a.registerChallengeRoutes(r)
	a.registerDashboardRoutes(r)

	return r
}

// ---------- main ----------

func main() {
	cfg := loadConfig()

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer logger.Sync()

	db, err := openDB(cfg)
	if err != nil {
		logger.Fatalw("failed to connect database", "error", err)
	}
	if err := autoMigrate(db); err != nil {
		logger.Fatalw("migration error", "error", err)
	}
	if err := seedContent(db, logger); err != nil {
		logger.Fatalw("seed error", "error", err)
	}

	app := newApp(cfg, logger, db)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Infow("starting server", "port", cfg.Port)
	if err := app.router().Run(":" + cfg.Port); err != nil {
		logger.Fatalw("server error", "error", err)
	}
}
