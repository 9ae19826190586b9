package attendance

import (
	"strings"

	"github.com/classlog/console/core/academia"
)

// ClasesPorPagina is the fixed page size of the class listing.
const ClasesPorPagina = 10

// FilterClases narrows an already-fetched class list. The group filter is a
// case-insensitive substring match on the group name; the teacher filter
// matches the teacher's full name and only applies for the administrative
// role (other roles already see only their own classes).
func FilterClases(clases []academia.Clase, filtroGrupo, filtroProfesor string, admin bool) []academia.Clase {
	filtroGrupo = strings.ToLower(strings.TrimSpace(filtroGrupo))
	filtroProfesor = strings.ToLower(strings.TrimSpace(filtroProfesor))

	out := make([]academia.Clase, 0, len(clases))
	for _, clase := range clases {
		if filtroGrupo != "" {
			if clase.Grupo == nil || !strings.Contains(strings.ToLower(clase.Grupo.Nombre), filtroGrupo) {
				continue
			}
		}
		if admin && filtroProfesor != "" {
			if clase.Profesor == nil ||
				!strings.Contains(strings.ToLower(clase.Profesor.NombreCompleto()), filtroProfesor) {
				continue
			}
		}
		out = append(out, clase)
	}
	return out
}

// Pagina is one client-side page of the filtered class list.
type Pagina struct {
	Clases []academia.Clase
	Numero int // 1-based
	Total  int // total pages, at least 1
	Desde  int // 1-based index of the first shown class
	Hasta  int // 1-based index of the last shown class
	Count  int // total filtered classes
}

// Paginar slices the filtered list into page `numero`, clamping it into the
// valid range.
func Paginar(clases []academia.Clase, numero int) Pagina {
	total := (len(clases) + ClasesPorPagina - 1) / ClasesPorPagina
	if total < 1 {
		total = 1
	}
	if numero < 1 {
		numero = 1
	}
	if numero > total {
		numero = total
	}

	desde := (numero - 1) * ClasesPorPagina
	hasta := desde + ClasesPorPagina
	if hasta > len(clases) {
		hasta = len(clases)
	}

	page := Pagina{
		Clases: clases[desde:hasta],
		Numero: numero,
		Total:  total,
		Count:  len(clases),
		Hasta:  hasta,
	}
	if len(page.Clases) > 0 {
		page.Desde = desde + 1
	}
	return page
}

// Paginas lists the page numbers 1..Total for rendering pagination controls.
func (p Pagina) Paginas() []int {
	nums := make([]int, p.Total)
	for i := range nums {
		nums[i] = i + 1
	}
	return nums
}

func (p Pagina) HasPrev() bool { return p.Numero > 1 }
func (p Pagina) HasNext() bool { return p.Numero < p.Total }
func (p Pagina) Prev() int     { return p.Numero - 1 }
func (p Pagina) Next() int     { return p.Numero + 1 }
