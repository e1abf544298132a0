package render

import (
	"html/template"
	"net/url"
	"strings"

	"portfolio-web/internal/domain"
)

// Meta son los datos comunes del documento HTML.
type Meta struct {
	Title   string
	Refresh int
}

// Link es un enlace ya resuelto. Los campos opcionales ausentes nunca producen un Link.
type Link struct {
	Href     template.URL
	Label    string
	Icon     string
	External bool
}

// Image es una imagen opcional ya resuelta.
type Image struct {
	Src template.URL
	Alt string
}

// Icon es un icono de fuente tintado con el color de la competencia.
type Icon struct {
	Class string
	Color string
}

type Header struct {
	Photo  *Image
	Name   string
	Title  string
	Bio    string
	Social []Link
}

type Skill struct {
	ID       int64
	Name     string
	Category string
	Icon     *Icon
	Color    string
	Level    int
}

type Badge struct {
	Name  string
	Color string
}

type Project struct {
	ID          int64
	Cover       *Image
	Title       string
	Description string
	Badges      []Badge
	Demo        *Link
	Code        *Link
}

type Contact struct {
	Description template.HTML
	Email       Link
	Phone       *Link
	CV          *Link
}

// Page es el modelo de la vista cargada. Skills y Projects vacios omiten su seccion.
type Page struct {
	Meta
	Header   Header
	Skills   []Skill
	Projects []Project
	Contact  Contact
}

type LoadingPage struct {
	Meta
}

type ErrorPage struct {
	Meta
	Message   string
	RetryPath string
}

type EmptyPage struct {
	Meta
	AdminURL template.URL
}

// markdownFunc convierte markdown en HTML seguro.
type markdownFunc func(src string) template.HTML

// BuildPage arma el modelo de la vista cargada a partir del payload. El perfil no puede ser nil.
// Las rutas relativas (p.ej. /media/...) se resuelven contra base; base nil las deja como estan.
func BuildPage(resp *domain.ApiResponse, md markdownFunc, base *url.URL) Page {
	p := resp.Profile
	page := Page{
		Meta: Meta{Title: p.Nom},
		Header: Header{
			Photo:  optionalImage(base, p.Photo, p.Nom),
			Name:   p.Nom,
			Title:  p.Titre,
			Bio:    p.Bio,
			Social: socialLinks(base, p),
		},
		Contact: buildContact(base, p, md),
	}

	for _, c := range resp.Competences {
		page.Skills = append(page.Skills, buildSkill(c))
	}
	for _, pr := range resp.Projets {
		page.Projects = append(page.Projects, buildProject(base, pr))
	}
	return page
}

func socialLinks(base *url.URL, p *domain.Profile) []Link {
	candidates := []struct {
		value domain.Optional[string]
		label string
		icon  string
	}{
		{p.LinkedIn, "LinkedIn", "fab fa-linkedin"},
		{p.GitHub, "GitHub", "fab fa-github"},
		{p.Twitter, "Twitter", "fab fa-twitter"},
		{p.Website, "Website", "fas fa-globe"},
	}

	var links []Link
	for _, c := range candidates {
		if l := optionalLink(base, c.value, c.label, c.icon); l != nil {
			links = append(links, *l)
		}
	}
	return links
}

func buildSkill(c domain.Competence) Skill {
	s := Skill{
		ID:       c.ID,
		Name:     c.Nom,
		Category: c.CategorieDisplay,
		Color:    c.Couleur,
		Level:    clampLevel(c.Niveau),
	}
	if class, ok := c.Icone.Get(); ok {
		s.Icon = &Icon{Class: class, Color: c.Couleur}
	}
	return s
}

func buildProject(base *url.URL, pr domain.Projet) Project {
	out := Project{
		ID:          pr.ID,
		Cover:       optionalImage(base, pr.ImagePrincipale, pr.Titre),
		Title:       pr.Titre,
		Description: pr.DescriptionCourte,
		Demo:        optionalLink(base, pr.URLDemo, "Demo", "fas fa-eye"),
		Code:        optionalLink(base, pr.URLCode, "Code", "fab fa-github"),
	}
	for _, tech := range pr.Technologies {
		out.Badges = append(out.Badges, Badge{Name: tech.Nom, Color: tech.Couleur})
	}
	return out
}

func buildContact(base *url.URL, p *domain.Profile, md markdownFunc) Contact {
	c := Contact{
		Email: Link{
			Href:  template.URL("mailto:" + url.PathEscape(p.Email)),
			Label: "Email",
			Icon:  "fas fa-envelope",
		},
	}
	if md != nil {
		c.Description = md(p.DescriptionLongue)
	} else {
		c.Description = template.HTML(template.HTMLEscapeString(p.DescriptionLongue))
	}
	if phone, ok := p.Telephone.Get(); ok {
		c.Phone = &Link{
			Href:  template.URL("tel:" + url.PathEscape(strings.ReplaceAll(phone, " ", ""))),
			Label: "Téléphone",
			Icon:  "fas fa-phone",
		}
	}
	c.CV = optionalLink(base, p.CV, "Télécharger CV", "fas fa-download")
	return c
}

func optionalLink(base *url.URL, o domain.Optional[string], label, icon string) *Link {
	raw, ok := o.Get()
	if !ok {
		return nil
	}
	return &Link{Href: safeURL(base, raw), Label: label, Icon: icon, External: true}
}

func optionalImage(base *url.URL, o domain.Optional[string], alt string) *Image {
	raw, ok := o.Get()
	if !ok {
		return nil
	}
	return &Image{Src: safeURL(base, raw), Alt: alt}
}

// safeURL deja pasar http, https, mailto y rutas relativas; el resto se neutraliza.
// Con base, una ruta relativa sin host se vuelve absoluta contra el backend.
func safeURL(base *url.URL, raw string) template.URL {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "#"
	}
	switch strings.ToLower(u.Scheme) {
	case "":
		if base != nil && u.Host == "" && u.Path != "" {
			u = base.ResolveReference(u)
		}
		return template.URL(u.String())
	case "http", "https", "mailto":
		return template.URL(u.String())
	default:
		return "#"
	}
}

func clampLevel(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
