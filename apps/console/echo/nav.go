package echoconsole

import "github.com/classlog/console/core/auth"

type (
	navLink struct {
		Label string
		Path  string
		// Permiso gates visibility; empty means visible to any
		// authenticated user.
		Permiso string
	}

	navSection struct {
		Label string
		Links []navLink
	}
)

// navSections is the full menu. visibleSections filters it per user; a
// section with no visible link is dropped entirely.
var navSections = []navSection{
	{
		Label: "Dashboard",
		Links: []navLink{
			{Label: "Dashboard", Path: "/dashboard"},
		},
	},
	{
		Label: "Configuración",
		Links: []navLink{
			{Label: "Roles", Path: "/roles", Permiso: "acceso_roles"},
			{Label: "Usuarios", Path: "/usuarios", Permiso: "acceso_usuarios"},
		},
	},
	{
		Label: "Académico",
		Links: []navLink{
			{Label: "Asistencias", Path: "/asistencias", Permiso: "acceso_asistencias"},
			{Label: "Clases", Path: "/clases", Permiso: "acceso_clases"},
			{Label: "Estudiantes", Path: "/estudiantes", Permiso: "acceso_estudiantes"},
			{Label: "Grupos", Path: "/grupos", Permiso: "acceso_grupos"},
			{Label: "Programas", Path: "/programas", Permiso: "acceso_programas"},
			{Label: "Profesores", Path: "/profesores", Permiso: "acceso_profesores"},
			{Label: "Asignación Estudiantes", Path: "/asignaciones", Permiso: "acceso_asignaciones"},
		},
	},
}

func visibleSections(actx *auth.Context) []navSection {
	var out []navSection
	for _, sec := range navSections {
		var links []navLink
		for _, l := range sec.Links {
			if l.Permiso == "" || actx.HasPermission(l.Permiso) {
				links = append(links, l)
			}
		}
		if len(links) > 0 {
			out = append(out, navSection{Label: sec.Label, Links: links})
		}
	}
	return out
}
