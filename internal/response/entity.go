package response

import "strings"

// Entity is the plural domain noun used in narrative responses.
type Entity string

const (
	EntityUsers        Entity = "users"
	EntityInternships  Entity = "internships"
	EntityApplications Entity = "applications"
	EntityItems        Entity = "items"
)

// Singular drops the trailing character of the plural form.
func (e Entity) Singular() string {
	s := string(e)
	if s == "" {
		return s
	}
	return s[:len(s)-1]
}

type entityRule struct {
	keywords []string
	entity   Entity
}

// Order matters: "user applications" is about users.
var entityRules = []entityRule{
	{keywords: []string{"user", "student"}, entity: EntityUsers},
	{keywords: []string{"internship", "job"}, entity: EntityInternships},
	{keywords: []string{"application", "applied"}, entity: EntityApplications},
}

// InferEntity picks the entity a question is about from keyword cues.
func InferEntity(question string) Entity {
	lowered := strings.ToLower(question)
	for _, rule := range entityRules {
		if containsAny(lowered, rule.keywords...) {
			return rule.entity
		}
	}
	return EntityItems
}

func containsAny(text string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}
