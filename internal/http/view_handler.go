package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portfolio-web/internal/render"
	"portfolio-web/internal/view"
)

// Viewer es la parte de view.View que usan los handlers.
type Viewer interface {
	Snapshot() view.State
	Load() <-chan view.State
}

// ViewHandler sirve la vista montada del portfolio como HTML.
type ViewHandler struct {
	logger   *zap.Logger
	view     Viewer
	renderer *render.Renderer
}

// NewViewHandler crea una instancia de ViewHandler.
func NewViewHandler(logger *zap.Logger, v Viewer, renderer *render.Renderer) *ViewHandler {
	return &ViewHandler{
		logger:   logger,
		view:     v,
		renderer: renderer,
	}
}

// Index maneja GET /.
func (h *ViewHandler) Index(c *gin.Context) {
	name, data := h.renderer.Page(h.view.Snapshot())
	c.HTML(http.StatusOK, name, data)
}

// Retry maneja POST /retry. Solo relanza el load desde el estado de error.
func (h *ViewHandler) Retry(c *gin.Context) {
	st := h.view.Snapshot()
	if st.Status() != view.StatusErrored {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	h.logger.Info("retrying portfolio load", zap.Uint64("generation", st.Generation))
	select {
	case next := <-h.view.Load():
		h.logger.Info("retry resolved",
			zap.String("status", next.Status().String()),
			zap.Uint64("generation", next.Generation),
		)
	case <-c.Request.Context().Done():
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// State maneja GET /state.
func (h *ViewHandler) State(c *gin.Context) {
	st := h.view.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"status":     st.Status().String(),
		"loading":    st.Loading,
		"error":      st.Err,
		"generation": st.Generation,
	})
}

// Healthz maneja GET /healthz.
func (h *ViewHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
