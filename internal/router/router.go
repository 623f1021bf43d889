package router

import (
	"database/sql"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/crypto/bcrypt"

	_ "person-pet-registry/docs"
	mem "person-pet-registry/internal/adapters/storage/memory"
	pg "person-pet-registry/internal/adapters/storage/postgres"
	"person-pet-registry/internal/domain/persons"
	"person-pet-registry/internal/domain/pets"
	"person-pet-registry/internal/domain/users"
	"person-pet-registry/internal/middleware"
	"person-pet-registry/internal/platform/logger"
	"person-pet-registry/internal/platform/metrics"
)

type Options struct {
	// Opcional: si viene DB usa Postgres. Si no, intenta DB_DSN por
	// env y cae a in-memory (modo dev).
	DB *sql.DB

	Log logger.Logger

	// Solo para modo in-memory: cuentas pre-cargadas. Vacío = seeds
	// dev por env (SEED_ADMIN_PASSWORD / SEED_USER_PASSWORD).
	SeedUsers []users.User
}

func New(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.NewFromEnv()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	// registry propio por router: no chocan tests que levantan varios
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err != nil {
				log.Error("postgres unavailable, falling back to in-memory", map[string]any{"err": err.Error()})
			} else {
				db = opened
			}
		}
	}

	var (
		personsRepo persons.Repository
		petsRepo    pets.Repository
		usersRepo   users.Repository
	)
	if db != nil {
		personsRepo = pg.NewPersonsRepo(db)
		petsRepo = pg.NewPetsRepo(db)
		usersRepo = pg.NewUsersRepo(db)
	} else {
		personsRepo = mem.NewPersonsRepo()
		petsRepo = mem.NewPetsRepo()

		seed := opts.SeedUsers
		if len(seed) == 0 {
			seed = devSeedUsers()
		}
		usersRepo = mem.NewUsersRepo(seed...)
	}

	// Access gate: autenticación + reglas de rol, antes de cualquier
	// handler de /v1. El allow-list (health/metrics/swagger) pasa sin auth.
	gate := middleware.NewGate(usersRepo, middleware.DefaultRules(), middleware.DefaultAllowList(), log, m)
	r.Use(gate.Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Services por módulo, colaboradores explícitos
	personsSvc := persons.NewService(personsRepo, persons.NewMapper())
	petsSvc := pets.NewService(petsRepo, personsRepo, pets.NewMapper())

	persons.RegisterRoutes(r, personsSvc, log, m)
	pets.RegisterRoutes(r, petsSvc, log, m)

	return r
}

// devSeedUsers arma las dos cuentas de desarrollo. Los passwords se
// hashean con bcrypt al arrancar; en producción los usuarios viven en
// la tabla users y esto no se usa.
func devSeedUsers() []users.User {
	return []users.User{
		seedUser("admin", envOr("SEED_ADMIN_PASSWORD", "admin"), users.RoleUser, users.RoleAdmin),
		seedUser("user", envOr("SEED_USER_PASSWORD", "user"), users.RoleUser),
	}
}

func seedUser(username, password string, roles ...users.Role) users.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		// solo alcanzable con password > 72 bytes; seeds dev no llegan
		panic(err)
	}
	return users.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		Roles:        roles,
		Enabled:      true,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
