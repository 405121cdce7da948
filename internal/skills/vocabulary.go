package skills

import (
	"regexp"
	"sort"
	"strings"
)

// Category names a vocabulary table.
type Category string

// Vocabulary categories
const (
	CategoryTechnical   Category = "technical"
	CategorySoft        Category = "soft"
	CategoryProgramming Category = "programming"
	CategoryFrameworks  Category = "frameworks_tools"
)

// Each table maps a surface form found in text to its canonical skill name.
// Canonical names are lowercase and trimmed.

var technicalSkills = map[string]string{
	// languages
	"python": "python", "java": "java", "javascript": "javascript", "typescript": "typescript",
	"c++": "c++", "c#": "c#", "c": "c", "go": "go", "rust": "rust", "ruby": "ruby", "php": "php",
	"swift": "swift", "kotlin": "kotlin", "scala": "scala", "r": "r", "matlab": "matlab",
	"perl": "perl", "shell": "shell", "bash": "bash", "powershell": "powershell", "sql": "sql",
	"html": "html", "css": "css", "xml": "xml", "json": "json", "yaml": "yaml",

	// web
	"react": "react", "angular": "angular", "vue": "vue", "nodejs": "nodejs", "express": "express",
	"fastapi": "fastapi", "django": "django", "flask": "flask", "spring": "spring",
	"asp.net": "asp.net", "bootstrap": "bootstrap", "tailwind": "tailwind", "jquery": "jquery",
	"webpack": "webpack", "vite": "vite",

	// databases
	"mysql": "mysql", "postgresql": "postgresql", "mongodb": "mongodb", "redis": "redis",
	"elasticsearch": "elasticsearch", "sqlite": "sqlite", "oracle": "oracle",
	"sql server": "sql server", "dynamodb": "dynamodb", "cassandra": "cassandra", "neo4j": "neo4j",

	// cloud and devops
	"aws": "aws", "azure": "azure", "google cloud": "google cloud", "gcp": "gcp",
	"docker": "docker", "kubernetes": "kubernetes", "jenkins": "jenkins", "terraform": "terraform",
	"ansible": "ansible", "puppet": "puppet", "chef": "chef", "vagrant": "vagrant", "git": "git",
	"github": "github", "gitlab": "gitlab", "bitbucket": "bitbucket", "circleci": "circleci",
	"travis ci": "travis ci",

	// data science and ml
	"machine learning": "machine learning", "deep learning": "deep learning",
	"artificial intelligence": "artificial intelligence", "data science": "data science",
	"pandas": "pandas", "numpy": "numpy", "scikit-learn": "scikit-learn",
	"tensorflow": "tensorflow", "pytorch": "pytorch", "keras": "keras",
	"matplotlib": "matplotlib", "seaborn": "seaborn", "plotly": "plotly", "jupyter": "jupyter",
	"apache spark": "apache spark", "hadoop": "hadoop",

	// mobile
	"ios": "ios", "android": "android", "react native": "react native", "flutter": "flutter",
	"xamarin": "xamarin", "ionic": "ionic",

	// testing
	"unit testing": "unit testing", "integration testing": "integration testing",
	"test driven development": "test driven development", "tdd": "tdd", "pytest": "pytest",
	"junit": "junit", "jest": "jest", "selenium": "selenium", "cypress": "cypress",

	// other
	"rest api": "rest api", "graphql": "graphql", "microservices": "microservices",
	"agile": "agile", "scrum": "scrum", "kanban": "kanban", "ci/cd": "ci/cd", "linux": "linux",
	"unix": "unix", "windows": "windows", "macos": "macos",
}

var softSkills = map[string]string{
	"communication": "communication", "leadership": "leadership", "teamwork": "teamwork",
	"problem solving": "problem solving", "critical thinking": "critical thinking",
	"analytical thinking": "analytical thinking", "creativity": "creativity",
	"innovation": "innovation", "adaptability": "adaptability", "flexibility": "flexibility",
	"time management": "time management", "project management": "project management",
	"organization": "organization", "attention to detail": "attention to detail",
	"multitasking": "multitasking", "collaboration": "collaboration",
	"interpersonal skills": "interpersonal skills", "presentation skills": "presentation skills",
	"public speaking": "public speaking", "written communication": "written communication",
	"negotiation": "negotiation", "conflict resolution": "conflict resolution",
	"emotional intelligence": "emotional intelligence", "empathy": "empathy",
	"patience": "patience", "persistence": "persistence", "reliability": "reliability",
	"accountability": "accountability", "initiative": "initiative",
	"self-motivation": "self-motivation", "work ethic": "work ethic",
	"professionalism": "professionalism",
}

var programmingLanguages = map[string]string{
	"python": "python", "java": "java", "javascript": "javascript", "js": "javascript",
	"typescript": "typescript", "ts": "typescript", "c++": "c++", "cpp": "c++", "c#": "c#",
	"csharp": "c#", "c": "c", "go": "go", "golang": "go", "rust": "rust", "ruby": "ruby",
	"php": "php", "swift": "swift", "kotlin": "kotlin", "scala": "scala", "r": "r",
	"matlab": "matlab", "perl": "perl", "shell": "shell", "bash": "bash",
	"powershell": "powershell", "sql": "sql", "html": "html", "css": "css", "xml": "xml",
	"json": "json", "yaml": "yaml", "markdown": "markdown",
}

var frameworksTools = map[string]string{
	"react": "react", "reactjs": "react", "angular": "angular", "angularjs": "angular",
	"vue": "vue", "vuejs": "vue", "nodejs": "nodejs", "node.js": "nodejs",
	"express": "express", "expressjs": "express", "fastapi": "fastapi", "django": "django",
	"flask": "flask", "spring": "spring", "spring boot": "spring boot", "asp.net": "asp.net",
	"bootstrap": "bootstrap", "tailwind": "tailwind", "tailwindcss": "tailwind",
	"jquery": "jquery", "webpack": "webpack", "vite": "vite", "docker": "docker",
	"kubernetes": "kubernetes", "k8s": "kubernetes", "jenkins": "jenkins",
	"terraform": "terraform", "ansible": "ansible", "git": "git", "github": "github",
	"gitlab": "gitlab", "pandas": "pandas", "numpy": "numpy", "scikit-learn": "scikit-learn",
	"sklearn": "scikit-learn", "tensorflow": "tensorflow", "pytorch": "pytorch",
	"keras": "keras", "matplotlib": "matplotlib", "seaborn": "seaborn", "plotly": "plotly",
	"jupyter": "jupyter",
}

// term is one compiled vocabulary entry. Multi-word entries have no pattern and
// are matched by substring containment.
type term struct {
	surface   string
	canonical string
	pattern   *regexp.Regexp
}

// vocabulary is an immutable, compiled vocabulary table.
type vocabulary struct {
	terms []term
}

// Letters, digits, underscore, '+' and '#' continue a token, so "c" never
// matches inside "c++" and "java" never matches inside "javascript". A
// preceding '.' also continues one, keeping "js" out of "node.js".
const (
	boundaryBefore = `(?:^|[^\p{L}\p{N}_+#.])`
	boundaryAfter  = `(?:[^\p{L}\p{N}_+#]|$)`
)

func compileVocabulary(table map[string]string) vocabulary {
	surfaces := make([]string, 0, len(table))
	for surface := range table {
		surfaces = append(surfaces, surface)
	}
	sort.Strings(surfaces)

	terms := make([]term, 0, len(surfaces))
	for _, surface := range surfaces {
		t := term{surface: surface, canonical: table[surface]}
		if !strings.Contains(surface, " ") {
			t.pattern = regexp.MustCompile(boundaryBefore + regexp.QuoteMeta(surface) + boundaryAfter)
		}
		terms = append(terms, t)
	}
	return vocabulary{terms: terms}
}

// match returns the sorted, de-duplicated canonical skills found in folded text.
func (v vocabulary) match(text string) []string {
	found := make(map[string]struct{})
	for _, t := range v.terms {
		if t.pattern == nil {
			if strings.Contains(text, t.surface) {
				found[t.canonical] = struct{}{}
			}
			continue
		}
		if t.pattern.MatchString(text) {
			found[t.canonical] = struct{}{}
		}
	}
	return sortedKeys(found)
}

var (
	technicalVocabulary   = compileVocabulary(technicalSkills)
	softVocabulary        = compileVocabulary(softSkills)
	programmingVocabulary = compileVocabulary(programmingLanguages)
	frameworksVocabulary  = compileVocabulary(frameworksTools)
)

// Vocabulary returns the canonical skill names of a category, sorted.
func Vocabulary(category Category) []string {
	var table map[string]string
	switch category {
	case CategoryTechnical:
		table = technicalSkills
	case CategorySoft:
		table = softSkills
	case CategoryProgramming:
		table = programmingLanguages
	case CategoryFrameworks:
		table = frameworksTools
	default:
		return nil
	}

	canonical := make(map[string]struct{}, len(table))
	for _, name := range table {
		canonical[name] = struct{}{}
	}
	return sortedKeys(canonical)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
