package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio-web/internal/domain"
)

// ErrNotFound indica que la fila pedida no existe o no esta activa.
var ErrNotFound = errors.New("not found")

const dateLayout = "2006-01-02"

type PortfolioRepository interface {
	ActiveProfile(ctx context.Context) (*domain.Profile, error)
	ActiveCompetences(ctx context.Context) ([]domain.Competence, error)
	ActiveProjets(ctx context.Context) ([]domain.Projet, error)
	ActiveExperiences(ctx context.Context) ([]domain.Experience, error)
	IncrementProjetViews(ctx context.Context, id int64) (int, error)
}

type PgPortfolioRepository struct {
	pool *pgxpool.Pool
}

func NewPgPortfolioRepository(pool *pgxpool.Pool) *PgPortfolioRepository {
	return &PgPortfolioRepository{pool: pool}
}

// ActiveProfile devuelve el primer perfil activo o nil si no hay ninguno.
func (r *PgPortfolioRepository) ActiveProfile(ctx context.Context) (*domain.Profile, error) {
	const query = `
		SELECT nom, titre, email, telephone, bio, description_longue, ville, pays,
		       photo, cv, linkedin, github, twitter, website
		FROM profiles
		WHERE actif
		ORDER BY id
		LIMIT 1
	`
	var (
		p                                  domain.Profile
		telephone, ville, pays             string
		photo, cv                          *string
		linkedin, github, twitter, website string
	)
	err := r.pool.QueryRow(ctx, query).Scan(
		&p.Nom,
		&p.Titre,
		&p.Email,
		&telephone,
		&p.Bio,
		&p.DescriptionLongue,
		&ville,
		&pays,
		&photo,
		&cv,
		&linkedin,
		&github,
		&twitter,
		&website,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	p.Telephone = domain.OptionalString(telephone)
	p.Ville = domain.OptionalString(ville)
	p.Pays = domain.OptionalString(pays)
	p.Photo = domain.OptionalStringPtr(photo)
	p.CV = domain.OptionalStringPtr(cv)
	p.LinkedIn = domain.OptionalString(linkedin)
	p.GitHub = domain.OptionalString(github)
	p.Twitter = domain.OptionalString(twitter)
	p.Website = domain.OptionalString(website)
	return &p, nil
}

func (r *PgPortfolioRepository) ActiveCompetences(ctx context.Context) ([]domain.Competence, error) {
	const query = `
		SELECT id, nom, categorie, niveau, icone, couleur, ordre
		FROM competences
		WHERE actif
		ORDER BY ordre, nom
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Competence{}
	for rows.Next() {
		var (
			c     domain.Competence
			icone string
		)
		if err := rows.Scan(&c.ID, &c.Nom, &c.Categorie, &c.Niveau, &icone, &c.Couleur, &c.Ordre); err != nil {
			return nil, err
		}
		c.Icone = domain.OptionalString(icone)
		c.CategorieDisplay = domain.Label(domain.CategorieLabels, c.Categorie)
		out = append(out, c)
	}
	return out, rows.Err()
}

// ActiveProjets devuelve los proyectos activos, destacados primero.
func (r *PgPortfolioRepository) ActiveProjets(ctx context.Context) ([]domain.Projet, error) {
	const query = `
		SELECT id, titre, description_courte, description_longue,
		       image_principale, image_2, image_3,
		       url_demo, url_code, url_case_study,
		       statut, date_debut, date_fin, featured, vues
		FROM projets
		WHERE actif
		ORDER BY featured DESC, ordre, date_debut DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Projet{}
	index := make(map[int64]int)
	for rows.Next() {
		var (
			p                     domain.Projet
			img, img2, img3       *string
			demo, code, caseStudy string
			dateDebut             time.Time
			dateFin               *time.Time
		)
		if err := rows.Scan(
			&p.ID,
			&p.Titre,
			&p.DescriptionCourte,
			&p.DescriptionLongue,
			&img,
			&img2,
			&img3,
			&demo,
			&code,
			&caseStudy,
			&p.Statut,
			&dateDebut,
			&dateFin,
			&p.Featured,
			&p.Vues,
		); err != nil {
			return nil, err
		}
		p.ImagePrincipale = domain.OptionalStringPtr(img)
		p.Image2 = domain.OptionalStringPtr(img2)
		p.Image3 = domain.OptionalStringPtr(img3)
		p.URLDemo = domain.OptionalString(demo)
		p.URLCode = domain.OptionalString(code)
		p.URLCaseStudy = domain.OptionalString(caseStudy)
		p.StatutDisplay = domain.Label(domain.StatutLabels, p.Statut)
		p.DateDebut = domain.Some(dateDebut.Format(dateLayout))
		if dateFin != nil {
			p.DateFin = domain.Some(dateFin.Format(dateLayout))
		}
		p.Technologies = []domain.Technology{}
		index[p.ID] = len(out)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const techQuery = `
		SELECT pt.projet_id, c.nom, c.couleur
		FROM projet_technologies pt
		JOIN competences c ON c.id = pt.competence_id
		ORDER BY pt.projet_id, c.ordre, c.nom
	`
	techRows, err := r.pool.Query(ctx, techQuery)
	if err != nil {
		return nil, err
	}
	defer techRows.Close()

	for techRows.Next() {
		var (
			projetID int64
			tech     domain.Technology
		)
		if err := techRows.Scan(&projetID, &tech.Nom, &tech.Couleur); err != nil {
			return nil, err
		}
		if i, ok := index[projetID]; ok {
			out[i].Technologies = append(out[i].Technologies, tech)
		}
	}
	return out, techRows.Err()
}

// ActiveExperiences devuelve las experiencias activas, las mas recientes primero.
func (r *PgPortfolioRepository) ActiveExperiences(ctx context.Context) ([]domain.Experience, error) {
	const query = `
		SELECT id, type_experience, titre, entreprise, lieu, date_debut, date_fin, description
		FROM experiences
		WHERE actif
		ORDER BY date_debut DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Experience{}
	index := make(map[int64]int)
	for rows.Next() {
		var (
			e         domain.Experience
			lieu      string
			dateDebut time.Time
			dateFin   *time.Time
		)
		if err := rows.Scan(&e.ID, &e.TypeExperience, &e.Titre, &e.Entreprise, &lieu, &dateDebut, &dateFin, &e.Description); err != nil {
			return nil, err
		}
		e.TypeDisplay = domain.Label(domain.ExperienceTypeLabels, e.TypeExperience)
		e.Lieu = domain.OptionalString(lieu)
		e.DateDebut = domain.Some(dateDebut.Format(dateLayout))
		if dateFin != nil {
			e.DateFin = domain.Some(dateFin.Format(dateLayout))
		}
		e.EstEnCours = dateFin == nil
		e.CompetencesAcquises = []string{}
		index[e.ID] = len(out)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const compQuery = `
		SELECT ec.experience_id, c.nom
		FROM experience_competences ec
		JOIN competences c ON c.id = ec.competence_id
		ORDER BY ec.experience_id, c.ordre, c.nom
	`
	compRows, err := r.pool.Query(ctx, compQuery)
	if err != nil {
		return nil, err
	}
	defer compRows.Close()

	for compRows.Next() {
		var (
			experienceID int64
			nom          string
		)
		if err := compRows.Scan(&experienceID, &nom); err != nil {
			return nil, err
		}
		if i, ok := index[experienceID]; ok {
			out[i].CompetencesAcquises = append(out[i].CompetencesAcquises, nom)
		}
	}
	return out, compRows.Err()
}

// IncrementProjetViews suma una vista a un proyecto activo y devuelve el nuevo total.
func (r *PgPortfolioRepository) IncrementProjetViews(ctx context.Context, id int64) (int, error) {
	const query = `
		UPDATE projets
		SET vues = vues + 1
		WHERE id = $1 AND actif
		RETURNING vues
	`
	var vues int
	err := r.pool.QueryRow(ctx, query, id).Scan(&vues)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	return vues, err
}
