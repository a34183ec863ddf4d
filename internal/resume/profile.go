package resume

const (
	// DefaultRole is used when no role can be extracted from the resume.
	DefaultRole = "Software Developer"
	// DefaultExperience is used when no experience level can be extracted.
	DefaultExperience = "Fresher"
)

// Profile is the structured result of parsing a resume. It is built once
// per request and not mutated afterwards.
type Profile struct {
	Role       string   `json:"Job Role"`
	Skills     []string `json:"Skills"`
	Experience string   `json:"Experience Level"`
}

// DefaultVocabulary is the built-in technical skill vocabulary. The set is
// open: deployments are expected to override it via the `vocabulary`
// configuration key as the domain evolves.
var DefaultVocabulary = []string{
	// Languages
	"C", "C++", "Java", "Python", "JavaScript",

	// Web
	"HTML", "CSS", "React", "Node.js", "Flask",

	// Databases
	"MySQL", "MongoDB", "PostgreSQL", "Oracle",

	// Core CS
	"OOPS", "DBMS", "CN", "OS",

	// Tools
	"OpenCV", "Git", "Docker",
}
