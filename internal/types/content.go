package types

type PersonalInfo struct {
	Name         string `json:"name"`
	Title        string `json:"title"`
	Bio          string `json:"bio,omitempty"`
	Email        string `json:"email,omitempty"`
	GitHub       string `json:"github,omitempty"`
	LinkedIn     string `json:"linkedin,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
	ResumeURL    string `json:"resumeUrl,omitempty"`
}

type Project struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Tech        []string `json:"tech,omitempty"`
	Link        string   `json:"link,omitempty"`
}

type Experience struct {
	Company     string `json:"company"`
	Role        string `json:"role"`
	Period      string `json:"period,omitempty"`
	Description string `json:"description,omitempty"`
}

type Education struct {
	School string `json:"school"`
	Degree string `json:"degree,omitempty"`
	Period string `json:"period,omitempty"`
}

// PortfolioContent is the site owner's content, submitted with every generate
// request. The generator embeds all of it into the system prompt; the
// fallback synthesizer only reads the fields it needs.
type PortfolioContent struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Projects     []Project    `json:"projects,omitempty"`
	Experience   []Experience `json:"experience,omitempty"`
	Skills       []string     `json:"skills,omitempty"`
	Education    []Education  `json:"education,omitempty"`
	Hobbies      []string     `json:"hobbies,omitempty"`
	Photos       []string     `json:"photos,omitempty"`
}

// ProjectIDs returns up to max project ids in content order; max <= 0 means
// all of them.
func (p *PortfolioContent) ProjectIDs(max int) []string {
	if p == nil {
		return []string{}
	}
	ids := make([]string, 0, len(p.Projects))
	for _, proj := range p.Projects {
		if max > 0 && len(ids) >= max {
			break
		}
		ids = append(ids, proj.ID)
	}
	return ids
}
