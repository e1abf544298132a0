package domain

import "time"

// ApiResponse es el payload completo de GET /api/portfolio/.
type ApiResponse struct {
	Success     bool             `json:"success"`
	Error       Optional[string] `json:"error"`
	Profile     *Profile         `json:"profile"`
	Competences []Competence     `json:"competences"`
	Projets     []Projet         `json:"projets"`
	Experiences []Experience     `json:"experiences"`
}

// Profile contiene la identidad y los datos de contacto del dueño del portfolio.
type Profile struct {
	Nom               string           `json:"nom"`
	Titre             string           `json:"titre"`
	Email             string           `json:"email"`
	Telephone         Optional[string] `json:"telephone"`
	Bio               string           `json:"bio"`
	DescriptionLongue string           `json:"description_longue"`
	Ville             Optional[string] `json:"ville"`
	Pays              Optional[string] `json:"pays"`
	Photo             Optional[string] `json:"photo"`
	CV                Optional[string] `json:"cv"`
	LinkedIn          Optional[string] `json:"linkedin"`
	GitHub            Optional[string] `json:"github"`
	Twitter           Optional[string] `json:"twitter"`
	Website           Optional[string] `json:"website"`
}

// Competence es una habilidad con nivel en porcentaje.
type Competence struct {
	ID               int64            `json:"id"`
	Nom              string           `json:"nom"`
	Categorie        string           `json:"categorie"`
	CategorieDisplay string           `json:"categorie_display"`
	Niveau           int              `json:"niveau"`
	Icone            Optional[string] `json:"icone"`
	Couleur          string           `json:"couleur"`
	Ordre            int              `json:"ordre"`
}

// Technology es la version reducida de una competencia usada como badge de proyecto.
type Technology struct {
	Nom     string `json:"nom"`
	Couleur string `json:"couleur"`
}

// Projet es un proyecto del portfolio.
type Projet struct {
	ID                int64            `json:"id"`
	Titre             string           `json:"titre"`
	DescriptionCourte string           `json:"description_courte"`
	DescriptionLongue string           `json:"description_longue"`
	ImagePrincipale   Optional[string] `json:"image_principale"`
	Image2            Optional[string] `json:"image_2"`
	Image3            Optional[string] `json:"image_3"`
	Technologies      []Technology     `json:"technologies"`
	URLDemo           Optional[string] `json:"url_demo"`
	URLCode           Optional[string] `json:"url_code"`
	URLCaseStudy      Optional[string] `json:"url_case_study"`
	Statut            string           `json:"statut"`
	StatutDisplay     string           `json:"statut_display"`
	DateDebut         Optional[string] `json:"date_debut"`
	DateFin           Optional[string] `json:"date_fin"`
	Featured          bool             `json:"featured"`
	Vues              int              `json:"vues"`
}

// Experience viaja en el payload pero la vista no la muestra.
type Experience struct {
	ID                  int64            `json:"id"`
	TypeExperience      string           `json:"type_experience"`
	TypeDisplay         string           `json:"type_display"`
	Titre               string           `json:"titre"`
	Entreprise          string           `json:"entreprise"`
	Lieu                Optional[string] `json:"lieu"`
	DateDebut           Optional[string] `json:"date_debut"`
	DateFin             Optional[string] `json:"date_fin"`
	EstEnCours          bool             `json:"est_en_cours"`
	Description         string           `json:"description"`
	CompetencesAcquises []string         `json:"competences_acquises"`
}

// Contact es un mensaje recibido por POST /api/contact/.
type Contact struct {
	ID       int64     `json:"id"`
	Nom      string    `json:"nom"`
	Email    string    `json:"email"`
	Sujet    string    `json:"sujet"`
	Message  string    `json:"message"`
	EnvoyeLe time.Time `json:"envoye_le"`
	Lu       bool      `json:"lu"`
	Repondu  bool      `json:"repondu"`
}

// Etiquetas de categoria tal como las muestra el backend.
var CategorieLabels = map[string]string{
	"frontend": "Frontend",
	"backend":  "Backend",
	"database": "Base de données",
	"devops":   "DevOps",
	"design":   "Design",
	"ia":       "Intelligence Artificielle",
	"autres":   "Autres",
}

var StatutLabels = map[string]string{
	"en_cours": "En cours",
	"termine":  "Terminé",
	"pause":    "En pause",
	"archive":  "Archivé",
}

var ExperienceTypeLabels = map[string]string{
	"travail":   "Expérience professionnelle",
	"formation": "Formation",
	"projet":    "Projet personnel",
	"benevolat": "Bénévolat",
}

// Label devuelve la etiqueta de un choice o la clave si no existe.
func Label(labels map[string]string, key string) string {
	if l, ok := labels[key]; ok {
		return l
	}
	return key
}
