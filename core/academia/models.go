// Package academia holds the backend's wire entities. The console never owns
// these records; it keeps transient in-memory copies of whatever page the
// backend returned last.
package academia

// Role names with special meaning in the console.
const (
	RolAdministrador = "Administrador"
	RolProfesor      = "Profesor"
)

type (
	// Permiso is an opaque capability tag, e.g. "acceso_usuarios".
	Permiso struct {
		ID     int    `json:"id"`
		Nombre string `json:"nombre"`
	}

	// Rol is a named bundle of permission tags. A user has exactly one role.
	Rol struct {
		ID       int       `json:"id"`
		Nombre   string    `json:"nombre"`
		Estado   bool      `json:"estado"`
		Permisos []Permiso `json:"permisos_asociados"`
	}

	// Usuario is the authenticated identity returned by the backend's user
	// detail endpoint.
	Usuario struct {
		ID       int    `json:"id"`
		Nombre   string `json:"nombre"`
		Apellido string `json:"apellido"`
		Email    string `json:"email"`
		Rol      *Rol   `json:"rol"`
	}

	Programa struct {
		ID          int    `json:"id"`
		Nombre      string `json:"nombre"`
		Descripcion string `json:"descripcion,omitempty"`
	}

	Salon struct {
		ID     int    `json:"id"`
		Nombre string `json:"nombre"`
		Estado bool   `json:"estado"`
	}

	Grupo struct {
		ID         int       `json:"id"`
		Nombre     string    `json:"nombre"`
		ProgramaID int       `json:"programa_id,omitempty"`
		Programa   *Programa `json:"programa,omitempty"`
	}

	Profesor struct {
		ID       int    `json:"id"`
		Nombre   string `json:"nombre"`
		Apellido string `json:"apellido"`
		Email    string `json:"email,omitempty"`
	}

	// Estudiante is keyed by documento (identity document number) in the
	// attendance endpoints, and that is the key the console uses for the
	// presence toggles.
	Estudiante struct {
		Documento  string `json:"documento"`
		Nombre     string `json:"nombre"`
		Apellido   string `json:"apellido"`
		GrupoID    int    `json:"grupo_id,omitempty"`
		ProgramaID int    `json:"programa_id,omitempty"`
	}

	// Clase is a scheduled class session. PuedeTomarAsistencia is derived by
	// the backend from the current time vs the class's attendance window.
	Clase struct {
		ID                   int       `json:"id"`
		Nombre               string    `json:"nombre"`
		ProfesorID           int       `json:"profesor_id"`
		GrupoID              int       `json:"grupo_id"`
		SalonID              int       `json:"salon_id"`
		DiaSemana            int       `json:"dia_semana"`
		HoraInicio           string    `json:"hora_inicio"`
		HoraFin              string    `json:"hora_fin"`
		VentanaInicio        string    `json:"ventana_inicio,omitempty"`
		VentanaFin           string    `json:"ventana_fin,omitempty"`
		PuedeTomarAsistencia bool      `json:"puede_tomar_asistencia"`
		Grupo                *Grupo    `json:"grupo,omitempty"`
		Profesor             *Profesor `json:"profesor,omitempty"`
		Salon                *Salon    `json:"salon,omitempty"`
	}

	// EstadoEstudiante is one student's recorded presence inside an existing
	// attendance record.
	EstadoEstudiante struct {
		Documento string `json:"documento"`
		Nombre    string `json:"nombre,omitempty"`
		Apellido  string `json:"apellido,omitempty"`
		Presente  bool   `json:"presente"`
	}

	// VerificacionAsistencia is the backend's answer to "was attendance
	// already taken for (clase, fecha)?".
	VerificacionAsistencia struct {
		ExisteAsistencia bool               `json:"existe_asistencia"`
		Estudiantes      []EstadoEstudiante `json:"estudiantes"`
		Presentes        int                `json:"presentes"`
		Ausentes         int                `json:"ausentes"`
	}

	// NuevaAsistencia creates (or, when a record already exists for the
	// student/class/day, updates) one attendance row.
	NuevaAsistencia struct {
		ClaseID      int    `json:"clase_id"`
		EstudianteID string `json:"estudiante_id"`
		Fecha        string `json:"fecha"`
		Presente     bool   `json:"presente"`
	}

	// Asistencia is one recorded attendance row as listed in the per-class
	// history.
	Asistencia struct {
		ID            int         `json:"id"`
		Fecha         string      `json:"fecha"`
		Estado        string      `json:"estado"`
		Presente      bool        `json:"presente"`
		RegistradoPor string      `json:"registrado_por,omitempty"`
		Estudiante    *Estudiante `json:"estudiante,omitempty"`
		Clase         *Clase      `json:"clase,omitempty"`
	}

	// ReporteFila is one row of the flattened attendance report used for CSV
	// export.
	ReporteFila struct {
		Fecha      string `json:"fecha"`
		Clase      string `json:"clase"`
		Grupo      string `json:"grupo"`
		Profesor   string `json:"profesor"`
		Salon      string `json:"salon"`
		Estudiante string `json:"estudiante"`
		Documento  string `json:"documento"`
		Estado     string `json:"estado"`
		HoraClase  string `json:"hora_clase"`
		DiaSemana  string `json:"dia_semana"`
	}

	// FiltrosReporte narrows the attendance report.
	FiltrosReporte struct {
		ClaseID int
		GrupoID int
	}

	// Asignacion links a student to a group.
	Asignacion struct {
		ID           int         `json:"id"`
		EstudianteID string      `json:"estudiante_id"`
		GrupoID      int         `json:"grupo_id"`
		Estudiante   *Estudiante `json:"estudiante,omitempty"`
		Grupo        *Grupo      `json:"grupo,omitempty"`
	}

	// ResumenDashboard carries the aggregate counts shown on the dashboard.
	ResumenDashboard struct {
		TotalEstudiantes int `json:"total_estudiantes"`
		TotalProfesores  int `json:"total_profesores"`
		TotalGrupos      int `json:"total_grupos"`
		TotalClases      int `json:"total_clases"`
		AsistenciasHoy   int `json:"asistencias_hoy"`
	}
)

// NombreCompleto returns "Nombre Apellido".
func (u Usuario) NombreCompleto() string { return u.Nombre + " " + u.Apellido }

func (p Profesor) NombreCompleto() string { return p.Nombre + " " + p.Apellido }

func (e Estudiante) NombreCompleto() string { return e.Nombre + " " + e.Apellido }

// PermisoNombres flattens the role's permission list to its name tags.
func (r Rol) PermisoNombres() []string {
	nombres := make([]string, 0, len(r.Permisos))
	for _, p := range r.Permisos {
		nombres = append(nombres, p.Nombre)
	}
	return nombres
}
