package dto

import "github.com/jhoicas/Inventario-console/internal/application/feedback"

// ErrorResponse cuerpo de error. La API remota solo garantiza Message; Code lo usa el servidor de la consola.
type ErrorResponse struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// FeedbackResponse resultado visible de una operación (éxito o error).
type FeedbackResponse struct {
	Kind           string `json:"kind"`
	Message        string `json:"message"`
	DismissAfterMs int64  `json:"dismiss_after_ms,omitempty"`
}

// ListResponse estado de un listado de la consola.
type ListResponse[E any] struct {
	Items    []E               `json:"items"`
	Feedback *FeedbackResponse `json:"feedback,omitempty"`
}

// ToFeedback convierte el aviso de un controlador; nil si el slot está vacío.
func ToFeedback(s feedback.State) *FeedbackResponse {
	if s.IsZero() {
		return nil
	}
	return &FeedbackResponse{
		Kind:           string(s.Kind),
		Message:        s.Message,
		DismissAfterMs: s.DismissAfter.Milliseconds(),
	}
}
