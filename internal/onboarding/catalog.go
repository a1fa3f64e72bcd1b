package onboarding

// MartialArts is the fixed catalog a new member can pick from.
var MartialArts = []string{
	"Boxing",
	"Muay Thai",
	"Brazilian Jiu-Jitsu",
	"Karate",
	"Taekwondo",
	"MMA",
	"Kickboxing",
	"Judo",
	"Wrestling",
	"Krav Maga",
}

type SkillLevel struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

var SkillLevels = []SkillLevel{
	{Value: "beginner", Label: "Beginner", Description: "0-6 months"},
	{Value: "novice", Label: "Novice", Description: "6 months - 2 years"},
	{Value: "intermediate", Label: "Intermediate", Description: "2-5 years"},
	{Value: "advanced", Label: "Advanced", Description: "5-10 years"},
	{Value: "expert", Label: "Expert", Description: "10+ years"},
}

func knownArt(art string) bool {
	for _, a := range MartialArts {
		if a == art {
			return true
		}
	}
	return false
}

func knownSkillLevel(value string) bool {
	for _, l := range SkillLevels {
		if l.Value == value {
			return true
		}
	}
	return false
}
