package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"portfolio-web/internal/repository"
	"portfolio-web/internal/service"
)

// PortfolioHandler expone el payload agregado y el contador de vistas.
type PortfolioHandler struct {
	logger    *zap.Logger
	portfolio *service.PortfolioService
}

// NewPortfolioHandler crea una instancia de PortfolioHandler.
func NewPortfolioHandler(logger *zap.Logger, portfolio *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		logger:    logger,
		portfolio: portfolio,
	}
}

// GetPortfolio maneja GET /api/portfolio/.
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	resp, err := h.portfolio.Portfolio(c.Request.Context())
	if err != nil {
		h.logger.Error("load portfolio failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Erreur lors du chargement des données: " + err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// IncrementViews maneja POST /api/project/:id/views/.
func (h *PortfolioHandler) IncrementViews(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Projet non trouvé"})
		return
	}

	vues, err := h.portfolio.IncrementViews(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Projet non trouvé"})
			return
		}
		h.logger.Error("increment views failed", zap.Int64("projet_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "views": vues})
}

// ContactHandler recibe el formulario de contacto.
type ContactHandler struct {
	logger   *zap.Logger
	contacts *service.ContactService
}

// NewContactHandler crea una instancia de ContactHandler.
func NewContactHandler(logger *zap.Logger, contacts *service.ContactService) *ContactHandler {
	return &ContactHandler{
		logger:   logger,
		contacts: contacts,
	}
}

// contactRequest es el cuerpo de POST /api/contact/. El resultado que cuenta es la
// validacion posterior al recorte de espacios.
type contactRequest struct {
	Nom     string `json:"nom" binding:"required,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Sujet   string `json:"sujet" binding:"required,max=200"`
	Message string `json:"message" binding:"required,min=10"`
}

func (r *contactRequest) trim() {
	r.Nom = strings.TrimSpace(r.Nom)
	r.Email = strings.TrimSpace(r.Email)
	r.Sujet = strings.TrimSpace(r.Sujet)
	r.Message = strings.TrimSpace(r.Message)
}

// PostContact maneja POST /api/contact/.
func (h *ContactHandler) PostContact(c *gin.Context) {
	var req contactRequest
	err := c.ShouldBindJSON(&req)
	var verrs validator.ValidationErrors
	if err == nil || errors.As(err, &verrs) {
		req.trim()
		err = binding.Validator.ValidateStruct(&req)
	}
	if err != nil {
		h.logger.Warn("invalid contact request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Erreur lors de l'envoi: " + contactErrorMessage(err)})
		return
	}

	contact, err := h.contacts.Submit(c.Request.Context(), service.ContactInput{
		Nom:      req.Nom,
		Email:    req.Email,
		Sujet:    req.Sujet,
		Message:  req.Message,
		ClientIP: c.ClientIP(),
	})
	if err != nil {
		if errors.Is(err, service.ErrRateLimited) {
			c.JSON(http.StatusTooManyRequests, gin.H{"success": false, "error": "Trop de messages envoyés, réessayez plus tard."})
			return
		}
		h.logger.Error("store contact failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Erreur lors de l'envoi"})
		return
	}

	h.logger.Info("contact received", zap.Int64("contact_id", contact.ID))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Message envoyé avec succès!"})
}

// contactErrorMessage traduce el primer error del validator por campo y tag.
func contactErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "requête invalide"
	}
	fe := verrs[0]
	switch fe.StructField() {
	case "Email":
		if fe.Tag() == "email" {
			return "Adresse email invalide."
		}
		return "L'adresse email est requise."
	case "Nom":
		if fe.Tag() == "max" {
			return "Le nom ne doit pas dépasser 100 caractères."
		}
		return "Le nom est requis."
	case "Sujet":
		if fe.Tag() == "max" {
			return "Le sujet ne doit pas dépasser 200 caractères."
		}
		return "Le sujet est requis."
	case "Message":
		return "Le message doit contenir au moins 10 caractères."
	default:
		return "requête invalide"
	}
}
