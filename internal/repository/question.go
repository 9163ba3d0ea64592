package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
)

var ErrQuestionsLoad = errors.New("failed to load questions")

// QuestionSource fetches the raw question bank.
type QuestionSource interface {
	Fetch(ctx context.Context) ([]entities.Question, error)
}

// QuestionRepository provides read-only access to the question bank.
// The bank is fetched once and cached for the process lifetime.
type QuestionRepository struct {
	source QuestionSource

	mu        sync.Mutex
	questions []entities.Question
	loaded    bool
}

// NewQuestionRepository creates a new QuestionRepository over the given source.
func NewQuestionRepository(source QuestionSource) *QuestionRepository {
	return &QuestionRepository{source: source}
}

// Load returns the question bank, fetching it on first use.
// Any read, parse or validation failure is reported as ErrQuestionsLoad
// and no partial list is returned.
func (r *QuestionRepository) Load(ctx context.Context) ([]entities.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.loaded {
		questions, err := r.source.Fetch(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrQuestionsLoad, err)
		}
		if err := validateQuestions(questions); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrQuestionsLoad, err)
		}
		r.questions = questions
		r.loaded = true
	}

	return cloneQuestions(r.questions), nil
}

// Count returns the number of cached questions, zero before the first Load.
func (r *QuestionRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.questions)
}

func validateQuestions(questions []entities.Question) error {
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i, err)
		}
	}
	return nil
}

func cloneQuestions(in []entities.Question) []entities.Question {
	out := make([]entities.Question, len(in))
	for i, q := range in {
		q.Answers = append([]string(nil), q.Answers...)
		out[i] = q
	}
	return out
}

// parseQuestions decodes a bank given either as a top-level array
// or wrapped in {"questions": [...]}.
func parseQuestions(data []byte) ([]entities.Question, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var wrapper struct {
			Questions []entities.Question `json:"questions"`
		}
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return nil, fmt.Errorf("failed to unmarshal questions JSON: %w", err)
		}
		if wrapper.Questions == nil {
			return nil, errors.New("missing \"questions\" field")
		}
		return normalizeAnswers(wrapper.Questions), nil
	}

	var questions []entities.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal questions JSON: %w", err)
	}
	// A JSON null decodes without error; only an explicit [] is an empty bank.
	if questions == nil {
		return nil, errors.New("questions JSON is not an array")
	}
	return normalizeAnswers(questions), nil
}

func normalizeAnswers(questions []entities.Question) []entities.Question {
	for i := range questions {
		if questions[i].Answers == nil {
			questions[i].Answers = []string{}
		}
	}
	return questions
}

// FileSource reads the question bank from a JSON file.
type FileSource struct {
	path string
}

// NewFileSource creates a new FileSource.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Fetch reads and decodes the file.
func (s *FileSource) Fetch(_ context.Context) ([]entities.Question, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	return parseQuestions(data)
}

// HTTPSource downloads the question bank from a URL.
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource creates a new HTTPSource with the given request timeout.
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch performs a GET request and decodes the response body.
func (s *HTTPSource) Fetch(ctx context.Context) ([]entities.Question, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return parseQuestions(body)
}
