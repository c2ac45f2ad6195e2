package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"

	"go-oscrec-backend/internal/domain"
	"go-oscrec-backend/pkg/apperror"
	"go-oscrec-backend/pkg/logger"
	"go-oscrec-backend/pkg/textsim"

	"github.com/go-playground/validator/v10"
)

// Signal-source weights for the combined skill mapping.
const (
	languageSignalWeight    = 0.4
	commitSignalWeight      = 0.3
	descriptionSignalWeight = 0.3
)

const (
	keywordTopN        = 15
	maxTechnicalSkills = 20
	// Repositories without a reported size still count toward language
	// weight with this proxy value.
	defaultRepoSizeProxy = 1000
	recentRepoWindow     = 90 * 24 * time.Hour
)

// technicalTerms is the fixed vocabulary matched against repository topics
// and descriptions when selecting technical skills.
var technicalTerms = []string{
	"api", "rest", "graphql", "docker", "kubernetes", "aws", "azure",
	"react", "vue", "angular", "node", "express", "django", "flask",
	"fastapi", "postgresql", "mysql", "mongodb", "redis", "machine-learning",
	"deep-learning", "ai", "data-science", "web-development", "mobile",
	"backend", "frontend", "fullstack", "devops", "testing", "ci-cd",
}

// defaultColdStartLanguages seed the synthesized profile when a user has
// too little history to profile normally.
var defaultColdStartLanguages = []string{"Python", "JavaScript"}

type profilingUsecase struct {
	github     domain.GitHubGateway
	cache      domain.Cache
	engine     *textsim.Engine
	validate   *validator.Validate
	profileTTL time.Duration
	now        func() time.Time
}

func NewProfilingUsecase(github domain.GitHubGateway, cache domain.Cache, engine *textsim.Engine, validate *validator.Validate, profileTTL time.Duration) domain.ProfileUsecase {
	return &profilingUsecase{
		github:     github,
		cache:      cache,
		engine:     engine,
		validate:   validate,
		profileTTL: profileTTL,
		now:        time.Now,
	}
}

func (u *profilingUsecase) BuildSkillProfile(ctx context.Context, username string) (*domain.SkillProfile, error) {
	if err := u.validateUsername(username); err != nil {
		return nil, err
	}

	cacheKey := "user_profile:" + username
	if raw, ok := u.cache.Get(ctx, cacheKey, u.profileTTL); ok {
		var cached domain.SkillProfile
		if err := json.Unmarshal(raw, &cached); err == nil {
			logger.Log.Debug("Using cached skill profile", "username", username)
			return &cached, nil
		}
	}

	logger.Log.Info("Creating skill profile", "username", username)

	user, err := u.github.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}
	repos, err := u.github.GetUserRepos(ctx, username)
	if err != nil {
		return nil, err
	}

	profile, err := u.buildProfile(ctx, user, repos)
	if err != nil {
		return nil, err
	}

	if raw, marshalErr := json.Marshal(profile); marshalErr == nil {
		u.cache.Set(ctx, cacheKey, raw)
	}
	return profile, nil
}

// buildProfile runs the cold-start state machine, then the standard
// three-signal extraction.
func (u *profilingUsecase) buildProfile(ctx context.Context, user *domain.User, repos []domain.Repository) (*domain.SkillProfile, error) {
	if user.PublicRepos == 0 {
		return nil, apperror.InsufficientData(fmt.Sprintf(
			"User %s has insufficient data. Please select your programming languages and areas of interest", user.Login))
	}
	if user.PublicRepos < 3 || len(repos) < 2 {
		logger.Log.Warn("Cold start detected, synthesizing default profile", "username", user.Login)
		return defaultSkillProfile(), nil
	}

	languageSkills := u.extractLanguageSkills(repos)
	commitSkills := u.extractCommitSkills(ctx, user.Login)
	descriptionSkills := u.extractDescriptionSkills(repos)

	combined := textsim.MergeWeighted([]textsim.WeightedMap{
		{Weights: languageSkills, Weight: languageSignalWeight},
		{Weights: commitSkills, Weight: commitSignalWeight},
		{Weights: descriptionSkills, Weight: descriptionSignalWeight},
	})
	logger.Log.Debug("Merged skill signals", "username", user.Login, "terms", len(combined))

	accountAgeDays := 0
	if createdAt, err := time.Parse(time.RFC3339, user.CreatedAt); err == nil {
		accountAgeDays = int(u.now().Sub(createdAt).Hours() / 24)
	}

	profile := &domain.SkillProfile{
		Languages:       textsim.NormalizeWeights(languageSkills),
		TechnicalSkills: u.extractTechnicalKeywords(repos),
		ExperienceLevel: estimateExperienceLevel(user, repos),
		ActivityScore:   u.calculateActivityScore(user, repos),
		TotalRepos:      user.PublicRepos,
		TotalCommits:    estimateTotalCommits(repos),
		AccountAgeDays:  accountAgeDays,
		IsColdStart:     false,
	}

	logger.Log.Info("Skill profile created", "username", user.Login,
		"languages", len(profile.Languages), "experience", profile.ExperienceLevel)
	return profile, nil
}

// extractLanguageSkills sums repository size as a byte-count proxy per
// primary language and normalizes to fractions of the total.
func (u *profilingUsecase) extractLanguageSkills(repos []domain.Repository) map[string]float64 {
	bytes := map[string]float64{}
	for _, repo := range repos {
		if repo.Language == "" {
			continue
		}
		size := repo.Size
		if size <= 0 {
			size = defaultRepoSizeProxy
		}
		bytes[repo.Language] += float64(size)
	}
	return textsim.NormalizeWeights(bytes)
}

// extractCommitSkills pulls TF-IDF keywords out of the user's push-event
// commit messages. Event fetching is best-effort; an empty corpus yields an
// empty mapping, never an error.
func (u *profilingUsecase) extractCommitSkills(ctx context.Context, username string) map[string]float64 {
	events, err := u.github.GetUserEvents(ctx, username)
	if err != nil {
		logger.Log.Warn("Skipping commit signal", "username", username, "error", err)
		return map[string]float64{}
	}

	var messages []string
	for _, event := range events {
		if event.Type != domain.EventTypePush {
			continue
		}
		for _, commit := range event.Payload.Commits {
			if commit.Message != "" {
				messages = append(messages, commit.Message)
			}
		}
	}
	if len(messages) == 0 {
		return map[string]float64{}
	}

	return keywordMap(u.engine.TopKeywords(strings.Join(messages, " "), keywordTopN))
}

// extractDescriptionSkills pulls TF-IDF keywords out of all repository
// descriptions and topic tags combined.
func (u *profilingUsecase) extractDescriptionSkills(repos []domain.Repository) map[string]float64 {
	var parts []string
	for _, repo := range repos {
		if repo.Description != "" {
			parts = append(parts, repo.Description)
		}
		if len(repo.Topics) > 0 {
			parts = append(parts, strings.Join(repo.Topics, " "))
		}
	}
	if len(parts) == 0 {
		return map[string]float64{}
	}
	return keywordMap(u.engine.TopKeywords(strings.Join(parts, " "), keywordTopN))
}

// extractTechnicalKeywords matches topics and descriptions against the
// fixed technical-term vocabulary, preserving discovery order, capped to 20.
func (u *profilingUsecase) extractTechnicalKeywords(repos []domain.Repository) []string {
	var keywords []string
	seen := map[string]bool{}
	add := func(s string) {
		if !seen[strings.ToLower(s)] && len(keywords) < maxTechnicalSkills {
			seen[strings.ToLower(s)] = true
			keywords = append(keywords, s)
		}
	}

	for _, repo := range repos {
		for _, topic := range repo.Topics {
			topicLower := strings.ToLower(topic)
			for _, term := range technicalTerms {
				if topicLower == term {
					add(topic)
				}
			}
		}
		descLower := strings.ToLower(repo.Description)
		if descLower == "" {
			continue
		}
		for _, term := range technicalTerms {
			if strings.Contains(descLower, term) {
				add(titleCase(strings.ReplaceAll(term, "-", " ")))
			}
		}
	}
	return keywords
}

// estimateExperienceLevel point-scores repo count, followers and aggregate
// stars; >=7 advanced, >=4 intermediate, else beginner.
func estimateExperienceLevel(user *domain.User, repos []domain.Repository) string {
	totalStars := 0
	for _, repo := range repos {
		totalStars += repo.StargazersCount
	}

	score := 0
	switch {
	case user.PublicRepos >= 20:
		score += 3
	case user.PublicRepos >= 10:
		score += 2
	case user.PublicRepos >= 5:
		score += 1
	}
	switch {
	case user.Followers >= 50:
		score += 3
	case user.Followers >= 20:
		score += 2
	case user.Followers >= 5:
		score += 1
	}
	switch {
	case totalStars >= 100:
		score += 3
	case totalStars >= 20:
		score += 2
	case totalStars >= 5:
		score += 1
	}

	switch {
	case score >= 7:
		return domain.ExperienceAdvanced
	case score >= 4:
		return domain.ExperienceIntermediate
	default:
		return domain.ExperienceBeginner
	}
}

// calculateActivityScore blends repo count, followers and how many of the
// ten most recently touched repositories were updated inside 90 days.
func (u *profilingUsecase) calculateActivityScore(user *domain.User, repos []domain.Repository) float64 {
	repoScore := math.Min(1, float64(user.PublicRepos)/50)
	followerScore := math.Min(1, float64(user.Followers)/100)

	window := len(repos)
	if window > 10 {
		window = 10
	}
	recent := 0
	now := u.now()
	for _, repo := range repos[:window] {
		if updatedAt, err := time.Parse(time.RFC3339, repo.UpdatedAt); err == nil {
			if now.Sub(updatedAt) < recentRepoWindow {
				recent++
			}
		}
	}
	recencyScore := 0.0
	if window > 0 {
		recencyScore = float64(recent) / float64(window)
	}

	score := repoScore*0.4 + followerScore*0.3 + recencyScore*0.3
	return math.Round(score*100) / 100
}

// estimateTotalCommits is a rough approximation; the API does not expose a
// direct total.
func estimateTotalCommits(repos []domain.Repository) int {
	return len(repos) * 50
}

// defaultSkillProfile synthesizes the trending-fallback profile for users
// with limited history.
func defaultSkillProfile() *domain.SkillProfile {
	weight := 1.0 / float64(len(defaultColdStartLanguages))
	languages := make(map[string]float64, len(defaultColdStartLanguages))
	for _, lang := range defaultColdStartLanguages {
		languages[lang] = weight
	}
	return &domain.SkillProfile{
		Languages:       languages,
		TechnicalSkills: []string{"beginner-friendly", "documentation", "open-source"},
		ExperienceLevel: domain.ExperienceBeginner,
		ActivityScore:   0.3,
		IsColdStart:     true,
	}
}

func (u *profilingUsecase) validateUsername(username string) error {
	if err := u.validate.Var(username, "required,min=1,max=39"); err != nil {
		return apperror.BadRequest("Invalid GitHub username")
	}
	if strings.HasPrefix(username, "-") {
		return apperror.BadRequest("Username cannot start with hyphen")
	}
	for _, r := range username {
		if !(r == '-' || r == '_' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return apperror.BadRequest("Invalid GitHub username format")
		}
	}
	return nil
}

func keywordMap(keywords []textsim.Keyword) map[string]float64 {
	out := make(map[string]float64, len(keywords))
	for _, kw := range keywords {
		out[kw.Term] = kw.Weight
	}
	return out
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
