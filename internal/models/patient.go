package models

// Patient is a presentation-layer record. The list is static; patient
// administration lives outside this service.
type Patient struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	VisitType string `json:"visit_type"`
	Room      string `json:"room,omitempty"`
}

func StaticPatients() []Patient {
	return []Patient{
		{ID: "1", Name: "John Doe", VisitType: "hemmöte", Room: "Rum 101"},
		{ID: "2", Name: "Anna Andersson", VisitType: "rutinkontroll", Room: "Rum 205"},
		{ID: "3", Name: "Erik Johansson", VisitType: "akutbesök", Room: "Rum 312"},
		{ID: "4", Name: "Maria Larsson", VisitType: "hemmöte", Room: "Rum 108"},
		{ID: "5", Name: "Lars Svensson", VisitType: "uppföljning", Room: "Rum 401"},
		{ID: "6", Name: "Ingrid Nilsson", VisitType: "rutinkontroll", Room: "Rum 203"},
	}
}
