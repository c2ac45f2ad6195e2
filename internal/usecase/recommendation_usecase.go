package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go-oscrec-backend/internal/domain"
	"go-oscrec-backend/internal/explain"
	"go-oscrec-backend/internal/scoring"
	"go-oscrec-backend/pkg/apperror"
	"go-oscrec-backend/pkg/logger"
	"go-oscrec-backend/pkg/textsim"
)

const (
	maxSearchLanguages   = 3
	repoCandidatesPerQry = 30
	topReposPerLanguage  = 30
	issueCandidates      = 50
	issueBodySnippetLen  = 200
)

type recommendationUsecase struct {
	github domain.GitHubGateway
	engine *textsim.Engine
	now    func() time.Time
}

func NewRecommendationUsecase(github domain.GitHubGateway, engine *textsim.Engine) domain.RecommendationUsecase {
	return &recommendationUsecase{
		github: github,
		engine: engine,
		now:    time.Now,
	}
}

func (u *recommendationUsecase) RecommendRepositories(ctx context.Context, profile *domain.SkillProfile, opts domain.RepoRecommendationOptions) ([]domain.ScoredRepository, error) {
	languages := opts.Languages
	if len(languages) == 0 {
		languages = profile.TopLanguages(maxSearchLanguages)
	}
	if len(languages) > maxSearchLanguages {
		languages = languages[:maxSearchLanguages]
	}

	excluded := make(map[string]bool, len(opts.ExcludeRepos))
	for _, name := range opts.ExcludeRepos {
		excluded[name] = true
	}

	userText := profile.FlattenText()
	var all []domain.ScoredRepository
	for _, language := range languages {
		query := fmt.Sprintf("language:%s stars:>=%d archived:false", language, opts.MinStars)
		candidates, err := u.github.SearchRepositories(ctx, query, "stars", "desc", repoCandidatesPerQry)
		if err != nil {
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				return nil, err
			}
			return nil, apperror.Recommendation("Failed to search repositories", err)
		}

		var scored []domain.ScoredRepository
		for _, candidate := range candidates {
			if excluded[candidate.FullName] {
				continue
			}
			result, ok := u.scoreRepository(profile, userText, candidate)
			if !ok {
				continue
			}
			scored = append(scored, result)
		}

		sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
		if len(scored) > topReposPerLanguage {
			scored = scored[:topReposPerLanguage]
		}
		all = append(all, scored...)
	}

	all = dedupeRepositories(all)
	sort.SliceStable(all, func(i, j int) bool { return all[i].Score > all[j].Score })
	if len(all) > opts.Limit {
		all = all[:opts.Limit]
	}

	logger.Log.Info("Repository recommendations ranked",
		"languages", len(languages), "results", len(all))
	return all, nil
}

// scoreRepository computes the weighted score and explanation for one
// candidate. A panic while scoring a single candidate drops only that
// candidate, never the whole ranking.
func (u *recommendationUsecase) scoreRepository(profile *domain.SkillProfile, userText string, repo domain.Repository) (result domain.ScoredRepository, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Warn("Skipping repository candidate", "repo", repo.FullName, "error", r)
			ok = false
		}
	}()

	skillMatch := u.engine.Similarity(userText, repoText(repo))
	activity := scoring.RepoActivityScore(repo, u.now())
	beginner := scoring.BeginnerFriendlinessScore(repo)
	growth := scoring.GrowthPotentialScore(repo)
	score := scoring.WeightedRepoScore(skillMatch, activity, beginner, growth, nil)

	matchingSkills := explain.MatchingSkills(profile.Languages, profile.TechnicalSkills,
		repo.Language, repo.Topics, repo.Description)

	return domain.ScoredRepository{
		Repository: repo,
		Score:      score,
		ComponentScores: map[string]float64{
			domain.ComponentSkillMatch:       skillMatch,
			domain.ComponentActivity:         activity,
			domain.ComponentBeginnerFriendly: beginner,
			domain.ComponentGrowthPotential:  growth,
		},
		Explanation: explain.Repository(profile, repo, skillMatch, activity, beginner, growth, matchingSkills),
	}, true
}

// repoText is the corpus a repository is matched against: language, topics
// and description. The name stays out so a lucky repo name alone cannot
// manufacture a skill match.
func repoText(repo domain.Repository) string {
	return strings.Join([]string{repo.Language, strings.Join(repo.Topics, " "), repo.Description}, " ")
}

// dedupeRepositories keeps the first occurrence of each full name. Language
// passes run in order, so a repo surfaced by an earlier language wins.
func dedupeRepositories(scored []domain.ScoredRepository) []domain.ScoredRepository {
	seen := make(map[string]bool, len(scored))
	out := scored[:0]
	for _, s := range scored {
		if seen[s.Repository.FullName] {
			continue
		}
		seen[s.Repository.FullName] = true
		out = append(out, s)
	}
	return out
}

func (u *recommendationUsecase) RecommendIssues(ctx context.Context, profile *domain.SkillProfile, opts domain.IssueRecommendationOptions) ([]domain.ScoredIssue, error) {
	query := buildIssueQuery(profile, opts.Difficulty, opts.Labels)
	candidates, err := u.github.SearchIssues(ctx, query, "created", "desc", issueCandidates)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, apperror.Recommendation("Failed to search issues", err)
	}

	userText := profile.FlattenText()
	var scored []domain.ScoredIssue
	for _, issue := range candidates {
		if issue.PullRequest != nil {
			continue
		}
		scored = append(scored, u.scoreIssue(profile, userText, issue))
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > opts.Limit {
		scored = scored[:opts.Limit]
	}

	logger.Log.Info("Issue recommendations ranked", "query", query, "results", len(scored))
	return scored, nil
}

func (u *recommendationUsecase) scoreIssue(profile *domain.SkillProfile, userText string, issue domain.Issue) domain.ScoredIssue {
	labels := issue.LabelNames()
	issueText := issueText(issue)

	skillMatch := u.engine.Similarity(userText, issueText)
	score := scoring.IssueScore(skillMatch, labels)
	difficulty := scoring.IssueDifficulty(labels, issue.Comments)
	estimatedTime := scoring.IssueTimeEstimate(difficulty)

	lowerText := strings.ToLower(issueText)
	var matchingSkills []string
	for _, language := range profile.TopLanguages(-1) {
		if strings.Contains(lowerText, strings.ToLower(language)) {
			matchingSkills = append(matchingSkills, language)
		}
	}

	return domain.ScoredIssue{
		Issue:       issue,
		Score:       score,
		Difficulty:  difficulty,
		Explanation: explain.Issue(profile, issue, skillMatch, matchingSkills, difficulty, estimatedTime),
	}
}

// issueText is the corpus an issue is matched against: title, labels, and
// the first 200 characters of the body.
func issueText(issue domain.Issue) string {
	body := issue.Body
	if runes := []rune(body); len(runes) > issueBodySnippetLen {
		body = string(runes[:issueBodySnippetLen])
	}
	return strings.Join([]string{issue.Title, strings.Join(issue.LabelNames(), " "), body}, " ")
}

// buildIssueQuery translates profile and filters into a GitHub issue search
// query. Explicit labels replace the default beginner label clause.
func buildIssueQuery(profile *domain.SkillProfile, difficulty string, labels []string) string {
	parts := []string{"is:issue", "is:open"}

	if len(labels) > 0 {
		for _, label := range labels {
			parts = append(parts, fmt.Sprintf("label:%q", label))
		}
	} else if difficulty == domain.ExperienceBeginner {
		parts = append(parts, `(label:"good first issue" OR label:"good-first-issue" OR label:"help wanted")`)
	}

	if top := profile.TopLanguages(2); len(top) > 0 {
		clauses := make([]string, 0, len(top))
		for _, language := range top {
			clauses = append(clauses, "language:"+language)
		}
		parts = append(parts, "("+strings.Join(clauses, " OR ")+")")
	}

	if difficulty == domain.ExperienceBeginner {
		parts = append(parts, "comments:<10")
	}

	return strings.Join(parts, " ")
}
