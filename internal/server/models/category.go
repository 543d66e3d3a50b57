package models

import "time"

// Category is shared by all users and has no owner.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CategoryPatch struct {
	Name        *string
	Description *string
	Color       *string
}

// DefaultCategoryColor is used when a category is created without a color.
const DefaultCategoryColor = "#3498db"

// CategoryRef is the category projection joined into a Location.
type CategoryRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// SeedCategories is the thematic catalog inserted by category seeding.
var SeedCategories = []Category{
	{Name: "Cultura", Description: "Eventos culturales, conciertos, ferias y actividades artísticas", Color: "#9b59b6"},
	{Name: "Seguridad", Description: "Alertas de seguridad, estaciones de policía y puntos de seguridad", Color: "#e74c3c"},
	{Name: "Deporte", Description: "Jornadas deportivas, eventos atléticos y actividades físicas", Color: "#3498db"},
	{Name: "Educación", Description: "Talleres educativos, escuelas y centros de aprendizaje", Color: "#1abc9c"},
	{Name: "Riesgo", Description: "Alertas de riesgo urbano, inundaciones, cortes de agua y emergencias", Color: "#f39c12"},
	{Name: "Comercio", Description: "Comercio local, ofertas comerciales y puntos de venta", Color: "#16a085"},
	{Name: "Limpieza", Description: "Campañas de limpieza, rutas de recolección y zonas de mantenimiento", Color: "#27ae60"},
	{Name: "Servicios", Description: "Servicios comunitarios, centros de salud y servicios públicos", Color: "#34495e"},
}
