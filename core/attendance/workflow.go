// Package attendance implements the attendance-taking workflow: picking an
// eligible class, detecting whether attendance was already taken today,
// toggling per-student presence and submitting one record per student.
package attendance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/classlog/console/core"
	"github.com/classlog/console/core/academia"
)

// Mode of the workflow after a class is selected.
type Mode int

const (
	// ModeListing shows the table of classes; no class selected.
	ModeListing Mode = iota
	// ModeFresh takes attendance for the first time today; every toggle
	// defaults to presente.
	ModeFresh
	// ModeView shows an existing record read-only.
	ModeView
	// ModeEdit re-opens an existing record for changes (admin only).
	ModeEdit
)

var (
	ErrFueraDeVentana        = errors.New("la clase está fuera de su ventana de asistencia")
	ErrSoloLectura           = errors.New("la asistencia registrada es de solo lectura")
	ErrSoloAdministrador     = errors.New("solo el rol Administrador puede editar una asistencia registrada")
	ErrSinClase              = errors.New("no hay una clase seleccionada")
	ErrSinEstudiantes        = errors.New("no hay estudiantes para guardar asistencia")
	ErrEstudianteDesconocido = errors.New("el estudiante no pertenece al grupo de la clase")
)

// Client is the slice of the backend API the workflow drives.
type Client interface {
	ClasesParaAsistencia(ctx context.Context, token string) ([]academia.Clase, error)
	EstudiantesDeGrupo(ctx context.Context, token string, grupoID int) ([]academia.Estudiante, error)
	VerificarAsistencia(ctx context.Context, token string, claseID int, fecha string) (academia.VerificacionAsistencia, error)
	CrearAsistencia(ctx context.Context, token string, alta academia.NuevaAsistencia) error
}

// Workflow holds the per-visit state of the attendance screen. It is
// rebuilt on every visit; rosters and toggles are never cached across
// visits.
type Workflow struct {
	client Client
	logger core.Logger
	now    func() time.Time
	token  string

	mode     Mode
	clase    *academia.Clase
	roster   []academia.Estudiante
	toggles  map[string]bool // documento -> presente
	existing *academia.VerificacionAsistencia
}

type Option func(*Workflow)

// WithClock overrides the source of "today". For tests.
func WithClock(now func() time.Time) Option {
	return func(w *Workflow) { w.now = now }
}

func WithLogger(logger core.Logger) Option {
	return func(w *Workflow) { w.logger = logger }
}

func New(client Client, token string, opts ...Option) *Workflow {
	w := &Workflow{
		client: client,
		logger: core.NopLogger{},
		now:    time.Now,
		token:  token,
		mode:   ModeListing,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Today is the date attendance records are written under.
func (w *Workflow) Today() string { return w.now().Format("2006-01-02") }

func (w *Workflow) Mode() Mode { return w.mode }

// Clase returns the selected class, if any.
func (w *Workflow) Clase() (academia.Clase, bool) {
	if w.clase == nil {
		return academia.Clase{}, false
	}
	return *w.clase, true
}

// Roster returns the group's students in backend order. Submission follows
// this order exactly.
func (w *Workflow) Roster() []academia.Estudiante { return w.roster }

// Presente reports the current toggle for a student document.
func (w *Workflow) Presente(documento string) bool { return w.toggles[documento] }

// Resumen returns the "N presentes, M ausentes" badge counts of the existing
// record, when the workflow is viewing one.
func (w *Workflow) Resumen() (presentes, ausentes int, ok bool) {
	if w.existing == nil || !w.existing.ExisteAsistencia {
		return 0, 0, false
	}
	return w.existing.Presentes, w.existing.Ausentes, true
}

// Start selects a class: it verifies whether attendance already exists for
// today, fetches the roster and seeds the toggles. An existing record puts
// the workflow in ModeView with the recorded values; students who joined
// the group after the record was taken default to presente so they never
// block a re-submission. A missing record puts it in ModeFresh with every
// student presente.
func (w *Workflow) Start(ctx context.Context, clase academia.Clase) error {
	if !clase.PuedeTomarAsistencia {
		return ErrFueraDeVentana
	}

	verif, err := w.client.VerificarAsistencia(ctx, w.token, clase.ID, w.Today())
	if err != nil {
		return errors.Wrap(err, "verificando asistencia existente")
	}

	roster, err := w.client.EstudiantesDeGrupo(ctx, w.token, clase.GrupoID)
	if err != nil {
		return errors.Wrap(err, "cargando estudiantes del grupo")
	}

	toggles := make(map[string]bool, len(roster))
	if verif.ExisteAsistencia {
		for _, est := range verif.Estudiantes {
			toggles[est.Documento] = est.Presente
		}
		for _, est := range roster {
			if _, seen := toggles[est.Documento]; !seen {
				toggles[est.Documento] = true
			}
		}
		w.existing = &verif
		w.mode = ModeView
	} else {
		for _, est := range roster {
			toggles[est.Documento] = true
		}
		w.existing = nil
		w.mode = ModeFresh
	}

	w.clase = &clase
	w.roster = roster
	w.toggles = toggles
	return nil
}

// EnableEdit flips an existing record from read-only into an editable state.
// Only the administrative role may do this.
func (w *Workflow) EnableEdit(roleName string) error {
	if w.mode != ModeView {
		return ErrSoloLectura
	}
	if roleName != academia.RolAdministrador {
		return ErrSoloAdministrador
	}
	w.mode = ModeEdit
	w.existing = nil
	return nil
}

// SetPresente updates one student's toggle.
func (w *Workflow) SetPresente(documento string, presente bool) error {
	if w.mode == ModeListing {
		return ErrSinClase
	}
	if w.mode == ModeView {
		return ErrSoloLectura
	}
	if _, ok := w.toggles[documento]; !ok {
		return errors.Wrap(ErrEstudianteDesconocido, documento)
	}
	w.toggles[documento] = presente
	return nil
}

// Submit writes one attendance record per student, strictly sequentially in
// roster order. The first failure aborts the remainder: already-submitted
// records stay (the backend upserts per student/class/day, so a retry is
// safe), nothing is rolled back, and the caller gets a single aggregated
// error to show.
func (w *Workflow) Submit(ctx context.Context) error {
	switch w.mode {
	case ModeListing:
		return ErrSinClase
	case ModeView:
		return ErrSoloLectura
	}
	if len(w.roster) == 0 {
		return ErrSinEstudiantes
	}

	fecha := w.Today()
	lote := uuid.NewString()
	w.logger.Info("guardando asistencia", map[string]interface{}{
		"lote": lote, "clase": w.clase.ID, "fecha": fecha, "estudiantes": len(w.roster),
	})

	for _, est := range w.roster {
		alta := academia.NuevaAsistencia{
			ClaseID:      w.clase.ID,
			EstudianteID: est.Documento,
			Fecha:        fecha,
			Presente:     w.toggles[est.Documento],
		}
		if err := w.client.CrearAsistencia(ctx, w.token, alta); err != nil {
			w.logger.Error("asistencia incompleta", err, map[string]interface{}{
				"lote": lote, "clase": w.clase.ID, "estudiante": est.Documento,
			})
			return errors.Wrapf(err, "guardando asistencia del estudiante %s (lote %s)", est.Documento, lote)
		}
	}
	return nil
}

// Reset returns to the listing and drops all per-class state.
func (w *Workflow) Reset() {
	w.mode = ModeListing
	w.clase = nil
	w.roster = nil
	w.toggles = nil
	w.existing = nil
}
