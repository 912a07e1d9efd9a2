package openfema

import "fmt"

// Declaration is a FEMA disaster declaration. One declaration covers a
// single designated area, so the identity key combines disaster number,
// state, and area.
type Declaration struct {
	DisasterNumber    int    `json:"disaster_number"`
	DeclarationTitle  string `json:"declaration_title"`
	State             string `json:"state"`
	IncidentType      string `json:"incident_type"`
	DeclarationDate   string `json:"declaration_date"`
	DesignatedArea    string `json:"designated_area"`
	IncidentBeginDate string `json:"incident_begin_date"`
	IncidentEndDate   string `json:"incident_end_date"`
	URL               string `json:"url"`
}

// Key returns the composite identity key "{disaster#}-{state}-{area}".
func (d Declaration) Key() string {
	return fmt.Sprintf("%d-%s-%s", d.DisasterNumber, d.State, d.DesignatedArea)
}

type summariesResponse struct {
	Summaries []declarationData `json:"DisasterDeclarationsSummaries"`
}

type declarationData struct {
	DisasterNumber    int    `json:"disasterNumber"`
	DeclarationTitle  string `json:"declarationTitle"`
	State             string `json:"state"`
	IncidentType      string `json:"incidentType"`
	DeclarationDate   string `json:"declarationDate"`
	DesignatedArea    string `json:"designatedArea"`
	IncidentBeginDate string `json:"incidentBeginDate"`
	IncidentEndDate   string `json:"incidentEndDate"`
}
