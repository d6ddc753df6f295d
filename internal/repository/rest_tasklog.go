package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/renato-web/Profluxo/internal/domain"
)

// IsConfigured reports whether a hosted REST store URL and anon key look
// usable. Placeholder values from the setup template are rejected, and the
// key must be JWT-shaped.
func IsConfigured(baseURL, apiKey string) bool {
	if baseURL == "" || strings.Contains(baseURL, "SEU_PROJETO") {
		return false
	}
	if apiKey == "" || strings.Contains(apiKey, "COLE_AQUI") {
		return false
	}
	return strings.HasPrefix(apiKey, "ey")
}

// RESTTaskLogRepo implements RowStore against a PostgREST endpoint
// (the Supabase /rest/v1 API).
type RESTTaskLogRepo struct {
	baseURL string
	apiKey  string
	table   string
	client  *http.Client
}

// NewRESTTaskLogRepo creates a REST repo. A nil client uses a 30s timeout.
func NewRESTTaskLogRepo(baseURL, apiKey, table string, client *http.Client) *RESTTaskLogRepo {
	if table == "" {
		table = DefaultTable
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &RESTTaskLogRepo{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		table:   table,
		client:  client,
	}
}

// rowID accepts the identity column as a JSON number or string.
type rowID string

func (id *rowID) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = rowID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = rowID(n.String())
	return nil
}

type restRow struct {
	ID                rowID    `json:"id"`
	Date              string   `json:"date"`
	User              string   `json:"user"`
	Role              string   `json:"role"`
	Tasks             []string `json:"tasks"`
	ProductivityScore *float64 `json:"productivityScore"`
}

type restInsert struct {
	Date              string   `json:"date"`
	User              string   `json:"user"`
	Role              string   `json:"role"`
	Tasks             []string `json:"tasks"`
	ProductivityScore int      `json:"productivityScore"`
}

// restError is the PostgREST error body.
type restError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (r *RESTTaskLogRepo) SelectAll(ctx context.Context) ([]domain.TaskLog, error) {
	const op = "selecting task logs"
	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", "created_at.desc")

	body, err := r.do(ctx, op, http.MethodGet, q, nil)
	if err != nil {
		return nil, err
	}

	var rows []restRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, &Error{Op: op, Message: fmt.Sprintf("decoding response: %v", err)}
	}

	logs := make([]domain.TaskLog, 0, len(rows))
	for _, row := range rows {
		l := domain.TaskLog{
			ID:                string(row.ID),
			Date:              trimDay(row.Date),
			User:              row.User,
			Role:              domain.JobTitle(row.Role),
			Tasks:             row.Tasks,
			ProductivityScore: domain.DefaultProductivityScore,
		}
		if row.ProductivityScore != nil {
			l.ProductivityScore = int(*row.ProductivityScore)
		}
		logs = append(logs, l)
	}
	return logs, nil
}

func (r *RESTTaskLogRepo) InsertOne(ctx context.Context, entry domain.NewTaskLog) error {
	payload, err := json.Marshal([]restInsert{{
		Date:              entry.Date,
		User:              entry.User,
		Role:              string(entry.Role),
		Tasks:             entry.Tasks,
		ProductivityScore: entry.ProductivityScore,
	}})
	if err != nil {
		return fmt.Errorf("encoding task log: %w", err)
	}
	_, err = r.do(ctx, "inserting task log", http.MethodPost, nil, payload)
	return err
}

func (r *RESTTaskLogRepo) DeleteOne(ctx context.Context, id string) error {
	q := url.Values{}
	q.Set("id", "eq."+id)
	_, err := r.do(ctx, "deleting task log", http.MethodDelete, q, nil)
	return err
}

func (r *RESTTaskLogRepo) do(ctx context.Context, op, method string, query url.Values, payload []byte) ([]byte, error) {
	if !IsConfigured(r.baseURL, r.apiKey) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotConfigured)
	}

	endpoint := r.baseURL + "/rest/v1/" + url.PathEscape(r.table)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%s: creating request: %w", op, err)
	}
	req.Header.Set("apikey", r.apiKey)
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		req.Header.Set("Prefer", "return=minimal")
	}

	resp, err := r.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%s: %w", op, ctx.Err())
		}
		return nil, &Error{Op: op, Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Op: op, Message: fmt.Sprintf("reading response: %v", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeRESTError(op, resp.StatusCode, body)
	}
	return body, nil
}

func decodeRESTError(op string, status int, body []byte) *Error {
	var re restError
	if err := json.Unmarshal(body, &re); err != nil || (re.Code == "" && re.Message == "") {
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = http.StatusText(status)
		}
		return Classify(op, strconv.Itoa(status), msg)
	}
	msg := re.Message
	if re.Details != "" {
		msg += ": " + re.Details
	}
	return Classify(op, re.Code, msg)
}
