package view

import (
	"portfolio-web/internal/domain"
)

const (
	// TransportErrorMessage se muestra ante cualquier fallo de red o de parseo.
	TransportErrorMessage = "Impossible de charger les données du portfolio"
	// FallbackErrorMessage se usa cuando el backend responde success=false sin mensaje.
	FallbackErrorMessage = "Erreur lors du chargement"
)

// Status es el estado visible de la vista, derivado del triple (data, loading, error).
type Status int

const (
	StatusLoading Status = iota
	StatusLoaded
	StatusErrored
	StatusEmpty
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusErrored:
		return "errored"
	case StatusEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// State es el triple de estado de la vista mas la generacion del ultimo load iniciado.
// Data nunca se muta: cada load exitoso lo reemplaza entero.
type State struct {
	Data       *domain.ApiResponse
	Loading    bool
	Err        string
	Generation uint64
}

func initialState() State {
	return State{Loading: true}
}

// Status deriva el render a mostrar. El orden de prioridad es loading, error, sin perfil.
func (s State) Status() Status {
	switch {
	case s.Loading:
		return StatusLoading
	case s.Err != "":
		return StatusErrored
	case s.Data == nil || s.Data.Profile == nil:
		return StatusEmpty
	default:
		return StatusLoaded
	}
}

// Msg es un evento aplicado por el reducer.
type Msg interface {
	isMsg()
}

// LoadStarted marca el inicio de un load con su generacion.
type LoadStarted struct {
	Generation uint64
}

// LoadFinished lleva el resultado de un load. Err != nil es un error de transporte.
type LoadFinished struct {
	Generation uint64
	Response   domain.ApiResponse
	Err        error
}

func (LoadStarted) isMsg()  {}
func (LoadFinished) isMsg() {}

// Reduce aplica msg sobre s y devuelve el nuevo estado. Es una funcion pura.
// Un LoadFinished de una generacion anterior a la ultima iniciada se descarta.
func Reduce(s State, msg Msg) State {
	switch m := msg.(type) {
	case LoadStarted:
		if m.Generation <= s.Generation {
			return s
		}
		s.Generation = m.Generation
		s.Loading = true
		return s

	case LoadFinished:
		if m.Generation != s.Generation {
			return s
		}
		switch {
		case m.Err != nil:
			s.Err = TransportErrorMessage
		case !m.Response.Success:
			s.Err = m.Response.Error.OrElse(FallbackErrorMessage)
		default:
			resp := m.Response
			s.Data = &resp
			s.Err = ""
		}
		s.Loading = false
		return s
	}
	return s
}
