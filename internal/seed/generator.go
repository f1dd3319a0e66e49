// Package seed generates realistic demo data for the practice log.
package seed

import (
	"context"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/samber/lo"

	"github.com/grindboard/practice-service/internal/models"
	"github.com/grindboard/practice-service/internal/repositories"
)

var (
	Topics = []string{
		"Array", "String", "Hash Table", "Dynamic Programming", "Math", "Sorting",
		"Greedy", "Depth-First Search", "Binary Search", "Breadth-First Search",
		"Tree", "Matrix", "Bit Manipulation", "Two Pointers", "Stack", "Heap",
		"Graph", "Linked List", "Sliding Window", "Backtracking", "Union Find",
		"Trie", "Recursion", "Divide and Conquer",
	}

	Companies = []string{
		"Google", "Amazon", "Meta", "Apple", "Microsoft", "Netflix", "Uber",
		"Airbnb", "LinkedIn", "Bloomberg", "Oracle", "Salesforce", "Adobe", "Snap",
		"Twitter", "Spotify", "Tesla", "ByteDance", "Goldman Sachs", "JPMorgan",
	}

	questionTitles = []string{
		"Two Sum", "Add Two Numbers", "Longest Substring Without Repeating Characters",
		"Median of Two Sorted Arrays", "Longest Palindromic Substring", "Reverse Integer",
		"Container With Most Water", "Roman to Integer", "Longest Common Prefix", "3Sum",
		"Letter Combinations of a Phone Number", "Valid Parentheses", "Merge Two Sorted Lists",
		"Generate Parentheses", "Merge k Sorted Lists", "Search in Rotated Sorted Array",
		"Valid Sudoku", "Combination Sum", "Trapping Rain Water", "Permutations",
		"Rotate Image", "Group Anagrams", "N-Queens", "Maximum Subarray", "Spiral Matrix",
		"Jump Game", "Merge Intervals", "Climbing Stairs", "Edit Distance", "Set Matrix Zeroes",
		"Sort Colors", "Minimum Window Substring", "Subsets", "Word Search",
		"Largest Rectangle in Histogram", "Decode Ways", "Validate Binary Search Tree",
		"Binary Tree Level Order Traversal", "Maximum Depth of Binary Tree",
		"Best Time to Buy and Sell Stock", "Word Ladder", "Number of Islands",
		"Course Schedule", "Implement Trie (Prefix Tree)", "Kth Largest Element in an Array",
		"LRU Cache", "Find Median from Data Stream", "Serialize and Deserialize Binary Tree",
		"Longest Increasing Subsequence", "Coin Change",
	}

	noteTemplates = []string{
		"Used two-pointer approach, worked well.",
		"Got stuck on edge cases, need to review.",
		"Optimal solution uses DP, I used brute force.",
		"Solved it but took too long, need to speed up.",
		"Clean solution with hash map.",
		"Couldn't figure out the recursive approach.",
		"Revisit this one, tricky base case.",
		"Nailed it! Much faster than last time.",
		"Need to practice this pattern more.",
		"Good progress, got the approach right but had a bug.",
		"", "", "",
	}

	difficulties = []models.DifficultyLevel{models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard}
	results      = []models.AttemptResult{models.ResultSolved, models.ResultUnsolved, models.ResultPartial}

	slugStrip = regexp.MustCompile(`[^a-z0-9\s]`)
	slugSpace = regexp.MustCompile(`\s+`)

	questionsFrom = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	questionsTo   = time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	attemptsTo    = time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)
)

// Generator produces deterministic data for a given seed
type Generator struct {
	rng *rand.Rand
}

func NewGenerator(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Questions returns n questions. Titles repeat with a numeric suffix once
// the built-in list is exhausted.
func (g *Generator) Questions(n int) []*models.Question {
	out := make([]*models.Question, 0, n)
	for i := 0; i < n; i++ {
		title := questionTitles[i%len(questionTitles)]
		if round := i / len(questionTitles); round > 0 {
			title = fmt.Sprintf("%s %d", title, round+1)
		}
		out = append(out, &models.Question{
			Title:      title,
			Link:       "https://leetcode.com/problems/" + Slug(title) + "/",
			Company:    pq.StringArray(g.pick(Companies, 1, 4)),
			Topic:      pq.StringArray(g.pick(Topics, 1, 3)),
			Difficulty: difficulties[g.rng.IntN(len(difficulties))],
			CreatedAt:  g.date(questionsFrom, questionsTo),
		})
	}
	return out
}

// Attempts returns n attempts spread over questions
func (g *Generator) Attempts(n int, questions []*models.Question) []*models.Attempt {
	if len(questions) == 0 {
		return []*models.Attempt{}
	}
	out := make([]*models.Attempt, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &models.Attempt{
			QuestionID: questions[g.rng.IntN(len(questions))].ID,
			TimeSpent:  5 + g.rng.IntN(56),
			Result:     results[g.rng.IntN(len(results))],
			Notes:      noteTemplates[g.rng.IntN(len(noteTemplates))],
			Date:       g.date(questionsFrom, attemptsTo),
		})
	}
	return out
}

// pick returns between min and max distinct values of from
func (g *Generator) pick(from []string, min, max int) []string {
	count := min + g.rng.IntN(max-min+1)
	shuffled := append([]string(nil), from...)
	g.rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	return shuffled[:count]
}

func (g *Generator) date(from, to time.Time) time.Time {
	span := to.Sub(from)
	return from.Add(time.Duration(g.rng.Int64N(int64(span)))).Truncate(time.Second)
}

// Slug turns a title into a LeetCode-style url segment
func Slug(title string) string {
	s := slugStrip.ReplaceAllString(strings.ToLower(title), "")
	return slugSpace.ReplaceAllString(strings.TrimSpace(s), "-")
}

// Result summarizes a seeding run
type Result struct {
	Questions int
	Attempts  int
	Topics    int
}

// Run inserts the generated questions and attempts inside WithTransaction.
// Stores without rollback (the memory driver) keep partial data on failure.
func Run(ctx context.Context, repo repositories.Repository, gen *Generator, questionCount, attemptCount int) (*Result, error) {
	questions := gen.Questions(questionCount)

	var attempts []*models.Attempt
	err := repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Question().CreateBatch(ctx, questions); err != nil {
			return fmt.Errorf("failed to seed questions: %w", err)
		}
		// Ids are assigned on insert
		attempts = gen.Attempts(attemptCount, questions)
		if err := tx.Attempt().CreateBatch(ctx, attempts); err != nil {
			return fmt.Errorf("failed to seed attempts: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	topics := lo.Uniq(lo.FlatMap(questions, func(q *models.Question, _ int) []string { return q.Topic }))
	return &Result{Questions: len(questions), Attempts: len(attempts), Topics: len(topics)}, nil
}
