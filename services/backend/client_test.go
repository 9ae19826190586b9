package backend

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/classlog/console/core"
	"github.com/classlog/console/core/academia"
)

func testClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	conf := &core.Config{Backend: core.BackendConfig{BaseURL: srv.URL, Timeout: 5 * time.Second}}
	client, err := NewClient(conf, core.NopLogger{})
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}
	return client, srv
}

func TestClientEnvelope(t *testing.T) {
	t.Run("data field decoded", func(t *testing.T) {
		client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"ok": true, "data": [{"id": 1, "nombre": "Admin"}]}`))
		}))

		roles, _, err := client.Roles(context.Background(), 1, 5)
		if err != nil {
			t.Fatalf("Roles() failed: %v", err)
		}
		if assert.Len(t, roles, 1) {
			assert.Equal(t, "Admin", roles[0].Nombre)
		}
	})

	t.Run("bare body fallback", func(t *testing.T) {
		client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"id": 2, "nombre": "Profesor"}]`))
		}))

		roles, _, err := client.Roles(context.Background(), 1, 5)
		if err != nil {
			t.Fatalf("Roles() failed: %v", err)
		}
		if assert.Len(t, roles, 1) {
			assert.Equal(t, 2, roles[0].ID)
		}
	})

	t.Run("ok false on 200 is an error", func(t *testing.T) {
		client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"ok": false, "error": "correo duplicado"}`))
		}))

		err := client.CrearUsuario(context.Background(), NuevoUsuario{})
		apiErr, ok := IsAPIError(err)
		if !ok {
			t.Fatalf("want APIError, got %v", err)
		}
		assert.Equal(t, "correo duplicado", apiErr.Message)
		assert.Equal(t, http.StatusOK, apiErr.StatusCode)
	})
}

func TestClientErrorMessages(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "error field", status: 400, body: `{"error": "nombre requerido"}`, wantMsg: "nombre requerido"},
		{name: "message field", status: 404, body: `{"message": "no encontrado"}`, wantMsg: "no encontrado"},
		{name: "error wins over message", status: 400, body: `{"error": "a", "message": "b"}`, wantMsg: "a"},
		{name: "no detail", status: 500, body: `{}`, wantMsg: "ocurrió un error"},
		{name: "not json", status: 502, body: `<html>Bad Gateway</html>`, wantMsg: "ocurrió un error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))

			_, err := client.Usuarios(context.Background())
			apiErr, ok := IsAPIError(err)
			if !ok {
				t.Fatalf("want APIError, got %v", err)
			}
			assert.Equal(t, tt.wantMsg, apiErr.Message)
			assert.Equal(t, tt.status, apiErr.StatusCode)
		})
	}
}

func TestClientBearerToken(t *testing.T) {
	var gotAuth string
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"ok": true, "data": []}`))
	}))

	if _, err := client.ClasesParaAsistencia(context.Background(), "tok-123"); err != nil {
		t.Fatalf("ClasesParaAsistencia() failed: %v", err)
	}
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClientNoTokenNoHeader(t *testing.T) {
	var gotAuth string
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))

	if _, err := client.Usuarios(context.Background()); err != nil {
		t.Fatalf("Usuarios() failed: %v", err)
	}
	assert.Empty(t, gotAuth)
}

func TestClientQueryParams(t *testing.T) {
	var gotQuery string
	var gotPath string
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	}))

	if _, _, err := client.BuscarRoles(context.Background(), "admin", 2, 10); err != nil {
		t.Fatalf("BuscarRoles() failed: %v", err)
	}
	assert.Equal(t, "/api/rol/buscar", gotPath)
	assert.Equal(t, "limite=10&nombre=admin&pagina=2", gotQuery)
}

func TestClientVerificarAsistencia(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/asistencias/verificar", r.URL.Path)
		assert.Equal(t, "7", r.URL.Query().Get("clase_id"))
		assert.Equal(t, "2024-05-01", r.URL.Query().Get("fecha"))
		w.Write([]byte(`{"ok": true, "data": {"existe_asistencia": true, "presentes": 2, "ausentes": 1,
			"estudiantes": [{"documento": "100", "presente": true}]}}`))
	}))

	verif, err := client.VerificarAsistencia(context.Background(), "tok", 7, "2024-05-01")
	if err != nil {
		t.Fatalf("VerificarAsistencia() failed: %v", err)
	}
	assert.True(t, verif.ExisteAsistencia)
	assert.Equal(t, 2, verif.Presentes)
	assert.Equal(t, 1, verif.Ausentes)
	assert.Len(t, verif.Estudiantes, 1)
}

func TestClientWrappedLists(t *testing.T) {
	t.Run("wrapped", func(t *testing.T) {
		client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"estudiantes": [{"documento": "100", "nombre": "Ana"}]}`))
		}))

		roster, err := client.EstudiantesDeGrupo(context.Background(), "tok", 3)
		if err != nil {
			t.Fatalf("EstudiantesDeGrupo() failed: %v", err)
		}
		if assert.Len(t, roster, 1) {
			assert.Equal(t, "100", roster[0].Documento)
		}
	})

	t.Run("bare", func(t *testing.T) {
		client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"documento": "200", "nombre": "Luis"}]`))
		}))

		roster, err := client.EstudiantesDeGrupo(context.Background(), "tok", 3)
		if err != nil {
			t.Fatalf("EstudiantesDeGrupo() failed: %v", err)
		}
		if assert.Len(t, roster, 1) {
			assert.Equal(t, "200", roster[0].Documento)
		}
	})
}

func TestClientPaginatedLists(t *testing.T) {
	t.Run("salones wrapped", func(t *testing.T) {
		var gotQuery string
		client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			w.Write([]byte(`{"salones": [{"id": 1, "nombre": "Aula 101"}], "totalPaginas": 4}`))
		}))

		salones, total, err := client.Salones(context.Background(), 2, 5)
		if err != nil {
			t.Fatalf("Salones() failed: %v", err)
		}
		assert.Equal(t, "limite=5&pagina=2", gotQuery)
		assert.Equal(t, 4, total)
		if assert.Len(t, salones, 1) {
			assert.Equal(t, "Aula 101", salones[0].Nombre)
		}
	})

	t.Run("salones bare", func(t *testing.T) {
		client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"id": 2, "nombre": "Laboratorio"}]`))
		}))

		salones, total, err := client.Salones(context.Background(), 1, 5)
		if err != nil {
			t.Fatalf("Salones() failed: %v", err)
		}
		assert.Zero(t, total)
		if assert.Len(t, salones, 1) {
			assert.Equal(t, 2, salones[0].ID)
		}
	})

	t.Run("clases wrapped", func(t *testing.T) {
		client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"clases": [{"id": 7, "nombre": "Matemáticas"}], "totalPaginas": 3}`))
		}))

		clases, total, err := client.Clases(context.Background(), 1, 5)
		if err != nil {
			t.Fatalf("Clases() failed: %v", err)
		}
		assert.Equal(t, 3, total)
		if assert.Len(t, clases, 1) {
			assert.Equal(t, 7, clases[0].ID)
		}
	})

	t.Run("profesores wrapped", func(t *testing.T) {
		client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"profesores": [{"id": 9, "nombre": "Elena"}], "totalPaginas": 2}`))
		}))

		profesores, total, err := client.Profesores(context.Background(), 1, 5)
		if err != nil {
			t.Fatalf("Profesores() failed: %v", err)
		}
		assert.Equal(t, 2, total)
		if assert.Len(t, profesores, 1) {
			assert.Equal(t, "Elena", profesores[0].Nombre)
		}
	})

	t.Run("grupos wrapped", func(t *testing.T) {
		client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"grupos": [{"id": 4, "nombre": "Grupo A"}], "totalPaginas": 1}`))
		}))

		grupos, total, err := client.Grupos(context.Background(), 1, 5)
		if err != nil {
			t.Fatalf("Grupos() failed: %v", err)
		}
		assert.Equal(t, 1, total)
		if assert.Len(t, grupos, 1) {
			assert.Equal(t, "Grupo A", grupos[0].Nombre)
		}
	})
}

func TestClientLogin(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/usuarios/login", r.URL.Path)
		w.Write([]byte(`{"ok": true, "data": {"token": "tok-xyz"}}`))
	}))

	resp, err := client.Login(context.Background(), "ana@classlog.test", "secret")
	if err != nil {
		t.Fatalf("Login() failed: %v", err)
	}
	assert.Equal(t, "tok-xyz", resp.Token)
}

func TestClientCrearAsistencia(t *testing.T) {
	var gotBody string
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"ok": true}`))
	}))

	alta := academia.NuevaAsistencia{ClaseID: 7, EstudianteID: "100", Fecha: "2024-05-01", Presente: true}
	if err := client.CrearAsistencia(context.Background(), "tok", alta); err != nil {
		t.Fatalf("CrearAsistencia() failed: %v", err)
	}
	assert.JSONEq(t, `{"clase_id": 7, "estudiante_id": "100", "fecha": "2024-05-01", "presente": true}`, gotBody)
}
