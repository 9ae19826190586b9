package echoconsole

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"

	"github.com/classlog/console/core"
	"github.com/classlog/console/core/academia"
	"github.com/classlog/console/core/session"
	"github.com/classlog/console/services/backend"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// fakeBackend is an in-memory rendition of the institution's REST API, just
// enough of it for the console's routes to work against.
type fakeBackend struct {
	mu           sync.Mutex
	usuarios     map[int]academia.Usuario
	clases       []academia.Clase
	roster       []academia.Estudiante
	verif        academia.VerificacionAsistencia
	creadas      []academia.NuevaAsistencia
	reporte      []academia.ReporteFila
	salones      []academia.Salon
	totalPaginas int
	salonesQuery url.Values
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		usuarios: map[int]academia.Usuario{
			1: {
				ID: 1, Nombre: "Ana", Apellido: "Lopez", Email: "ana@classlog.test",
				Rol: &academia.Rol{ID: 1, Nombre: academia.RolAdministrador, Estado: true,
					Permisos: []academia.Permiso{
						{ID: 1, Nombre: "acceso_roles"},
						{ID: 2, Nombre: "acceso_usuarios"},
						{ID: 3, Nombre: "acceso_asistencias"},
						{ID: 4, Nombre: "acceso_clases"},
						{ID: 5, Nombre: "acceso_estudiantes"},
						{ID: 6, Nombre: "acceso_grupos"},
						{ID: 7, Nombre: "acceso_programas"},
						{ID: 8, Nombre: "acceso_profesores"},
						{ID: 9, Nombre: "acceso_asignaciones"},
						{ID: 10, Nombre: "acceso_salones"},
					}},
			},
			2: {
				ID: 2, Nombre: "Luis", Apellido: "Mora", Email: "luis@classlog.test",
				Rol: &academia.Rol{ID: 2, Nombre: academia.RolProfesor, Estado: true,
					Permisos: []academia.Permiso{{ID: 3, Nombre: "acceso_asistencias"}}},
			},
			3: {
				ID: 3, Nombre: "Rita", Apellido: "Paz", Email: "rita@classlog.test",
				Rol: &academia.Rol{ID: 3, Nombre: "Coordinador", Estado: true,
					Permisos: []academia.Permiso{
						{ID: 1, Nombre: "acceso_roles"},
						{ID: 2, Nombre: "acceso_usuarios"},
					}},
			},
			4: {
				ID: 4, Nombre: "Sara", Apellido: "Vega", Email: "sara@classlog.test",
				Rol: &academia.Rol{ID: 4, Nombre: "Planeador", Estado: true,
					Permisos: []academia.Permiso{{ID: 4, Nombre: "acceso_clases"}}},
			},
		},
		clases: []academia.Clase{
			{ID: 7, Nombre: "Matemáticas", GrupoID: 3, PuedeTomarAsistencia: true,
				HoraInicio: "08:00", HoraFin: "10:00",
				Grupo:    &academia.Grupo{ID: 3, Nombre: "Grupo A"},
				Profesor: &academia.Profesor{ID: 2, Nombre: "Luis", Apellido: "Mora"}},
			{ID: 8, Nombre: "Historia", GrupoID: 4, PuedeTomarAsistencia: false,
				HoraInicio: "10:00", HoraFin: "12:00",
				Grupo:    &academia.Grupo{ID: 4, Nombre: "Grupo B"},
				Profesor: &academia.Profesor{ID: 2, Nombre: "Luis", Apellido: "Mora"}},
		},
		roster: []academia.Estudiante{
			{Documento: "100", Nombre: "Ana", Apellido: "Solis"},
			{Documento: "200", Nombre: "Beto", Apellido: "Rios"},
		},
		salones: []academia.Salon{
			{ID: 1, Nombre: "Salón 1", Estado: true},
			{ID: 2, Nombre: "Laboratorio", Estado: false},
		},
		totalPaginas: 3,
		reporte: []academia.ReporteFila{
			{Fecha: "2024-05-01", Clase: "Matemáticas", Grupo: "Grupo A", Profesor: "Luis Mora",
				Salon: "Salón 1", Estudiante: "Ana Solis", Documento: "100", Estado: "Presente",
				HoraClase: "08:00 - 10:00", DiaSemana: "Miércoles"},
		},
	}
}

func (fb *fakeBackend) handler(t *testing.T) http.Handler {
	ok := func(w http.ResponseWriter, data interface{}) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]interface{}{"ok": true, "data": data}); err != nil {
			t.Errorf("encoding fake response: %v", err)
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/usuarios/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email      string `json:"email"`
			Contrasena string `json:"contraseña"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Email != "ana@classlog.test" || body.Contrasena != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "credenciales incorrectas"}`))
			return
		}
		ok(w, map[string]string{"token": signTestToken(t, 1)})
	})
	mux.HandleFunc("/api/usuarios/", func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/api/usuarios/"))
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		usr, found := fb.usuarios[id]
		if !found {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error": "usuario no encontrado"}`))
			return
		}
		ok(w, usr)
	})
	mux.HandleFunc("/api/clases/para-asistencia", func(w http.ResponseWriter, r *http.Request) {
		ok(w, fb.clases)
	})
	mux.HandleFunc("/api/grupos/3/estudiantes", func(w http.ResponseWriter, r *http.Request) {
		ok(w, map[string]interface{}{"estudiantes": fb.roster})
	})
	mux.HandleFunc("/api/asistencias/verificar", func(w http.ResponseWriter, r *http.Request) {
		fb.mu.Lock()
		defer fb.mu.Unlock()
		ok(w, fb.verif)
	})
	mux.HandleFunc("/api/asistencias/reporte", func(w http.ResponseWriter, r *http.Request) {
		ok(w, fb.reporte)
	})
	mux.HandleFunc("/api/asistencias", func(w http.ResponseWriter, r *http.Request) {
		var alta academia.NuevaAsistencia
		_ = json.NewDecoder(r.Body).Decode(&alta)
		fb.mu.Lock()
		fb.creadas = append(fb.creadas, alta)
		fb.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"ok": true}`))
	})
	mux.HandleFunc("/api/salones", func(w http.ResponseWriter, r *http.Request) {
		fb.mu.Lock()
		fb.salonesQuery = r.URL.Query()
		total := fb.totalPaginas
		fb.mu.Unlock()
		ok(w, map[string]interface{}{"salones": fb.salones, "totalPaginas": total})
	})
	mux.HandleFunc("/api/dashboard/resumen", func(w http.ResponseWriter, r *http.Request) {
		ok(w, academia.ResumenDashboard{TotalEstudiantes: 12, TotalProfesores: 3, TotalGrupos: 2, TotalClases: 5, AsistenciasHoy: 1})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		// any other resource listing the pages might fetch
		w.Write([]byte(`{"ok": true, "data": []}`))
	})
	return mux
}

// testEnv wires a full console server against a fake backend.
type testEnv struct {
	server   Server
	backend  *fakeBackend
	sessions session.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	fb := newFakeBackend()
	api := httptest.NewServer(fb.handler(t))
	t.Cleanup(api.Close)

	conf := &core.Config{
		TestMode: true,
		Env:      "TEST",
		AppName:  "ClassLog",
		Backend:  core.BackendConfig{BaseURL: api.URL, Timeout: 5 * time.Second},
		Server:   core.ServerConfig{Addr: ":0", SessionMaxAge: time.Hour},
	}

	validate := validator.New()
	translator := newTestTranslator()
	core.InitValidators(validate, translator)

	client, err := backend.NewClient(conf, core.NopLogger{})
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}
	sessions := session.NewCookieStore([]byte(testSecret), conf.Server.SessionMaxAge)

	srv := NewServer(ServerDeps{
		Conf:       conf,
		Logger:     core.NopLogger{},
		Backend:    client,
		Sessions:   sessions,
		Validate:   validate,
		Translator: translator,
	})
	return &testEnv{server: srv, backend: fb, sessions: sessions}
}

func newTestTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

func signTestToken(t *testing.T, id int) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &session.Claims{ID: id}).
		SignedString([]byte("backend-secret"))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return token
}

// sessionCookie builds a valid signed session cookie for the given user id.
func (env *testEnv) sessionCookie(t *testing.T, id int) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess := session.Session{Token: signTestToken(t, id)}
	if err := env.sessions.Save(rec, req, sess); err != nil {
		t.Fatalf("saving test session: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("no session cookie written")
	}
	return cookies[0]
}

func (env *testEnv) get(t *testing.T, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) postForm(t *testing.T, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, req)
	return rec
}
