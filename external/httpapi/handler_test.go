package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Priyanshu9798/lecture-zen-38/internal/config"
	"github.com/Priyanshu9798/lecture-zen-38/internal/repository"
	"github.com/Priyanshu9798/lecture-zen-38/internal/review"
	"github.com/Priyanshu9798/lecture-zen-38/internal/study"
)

type mockRepository struct {
	lectures []repository.Lecture
	detail   *repository.LectureDetail
	created  []repository.CreateLectureInput
}

func (m *mockRepository) ListLectures(_ context.Context) ([]repository.Lecture, error) {
	return m.lectures, nil
}

func (m *mockRepository) SearchLectures(_ context.Context, query string) ([]repository.Lecture, error) {
	var out []repository.Lecture
	for _, l := range m.lectures {
		if strings.Contains(strings.ToLower(l.Title), strings.ToLower(query)) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *mockRepository) GetLectureDetail(_ context.Context, lectureID string) (*repository.LectureDetail, error) {
	if m.detail == nil || m.detail.Lecture.ID != lectureID {
		return nil, repository.ErrNotFound
	}
	return m.detail, nil
}

func (m *mockRepository) CreateLecture(_ context.Context, input repository.CreateLectureInput) (*repository.Lecture, error) {
	m.created = append(m.created, input)
	return &repository.Lecture{
		ID:              "created-1",
		Title:           input.Title,
		Date:            input.Date,
		DurationSeconds: input.DurationSeconds,
		SourceKind:      input.SourceKind,
	}, nil
}

func (m *mockRepository) SaveQuizAttempt(_ context.Context, _ repository.SaveQuizAttemptInput) error {
	return nil
}

func (m *mockRepository) UpdateFlashcardReview(_ context.Context, _ repository.UpdateFlashcardReviewInput) error {
	return nil
}

type mockAnswerer struct {
	response string
}

func (m *mockAnswerer) Answer(_ context.Context, _, _ string) (string, error) {
	return m.response, nil
}

func testDetail() *repository.LectureDetail {
	return &repository.LectureDetail{
		Lecture: repository.Lecture{
			ID:              "lecture-1",
			Title:           "Introduction to Machine Learning",
			Date:            time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			DurationSeconds: 3600,
			SourceKind:      repository.SourceKindAudio,
		},
		Transcript: []repository.TranscriptSegment{
			{ID: "s1", LectureID: "lecture-1", TimestampSeconds: 0, Text: "Welcome to the course."},
			{ID: "s2", LectureID: "lecture-1", TimestampSeconds: 30, Text: "Machine learning basics."},
		},
		Quiz: []repository.QuizQuestion{
			{ID: "q1", Prompt: "What is ML?", Options: []string{"a", "b"}, CorrectIndex: 1, Explanation: "because"},
		},
		Flashcards: []repository.Flashcard{
			{ID: "f1", LectureID: "lecture-1", Question: "Define ML", Answer: "Learning from data", Difficulty: 3},
		},
	}
}

func newTestServer(t *testing.T, repo *mockRepository, svc *mockAnswerer) *httptest.Server {
	t.Helper()
	cfg := &config.Config{
		Env:            "development",
		AllowedOrigins: []string{"*"},
	}
	manager := study.NewManager(cfg, repo, svc, review.NewIntervalScheduler())
	srv := httptest.NewServer(NewRouter(NewHandler(cfg, manager, repo)))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return resp.StatusCode
}

func postJSON(t *testing.T, url string, body any, out any) int {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return resp.StatusCode
}

func TestListLectures_FiltersByQuery(t *testing.T) {
	repo := &mockRepository{lectures: []repository.Lecture{
		{ID: "l1", Title: "Neural Networks", SourceKind: repository.SourceKindAudio},
		{ID: "l2", Title: "Linear Algebra", SourceKind: repository.SourceKindDocument},
	}}
	srv := newTestServer(t, repo, &mockAnswerer{})

	var resp struct {
		Lectures []lectureDTO `json:"lectures"`
	}
	if status := getJSON(t, srv.URL+"/api/v1/lectures?q=neural", &resp); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(resp.Lectures) != 1 || resp.Lectures[0].ID != "l1" {
		t.Fatalf("expected only l1, got %+v", resp.Lectures)
	}
}

func TestGetLecture_NotFound(t *testing.T) {
	srv := newTestServer(t, &mockRepository{}, &mockAnswerer{})

	if status := getJSON(t, srv.URL+"/api/v1/lectures/missing", nil); status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
}

func TestCreateLecture_RejectsUnknownFileType(t *testing.T) {
	repo := &mockRepository{}
	srv := newTestServer(t, repo, &mockAnswerer{})

	status := postJSON(t, srv.URL+"/api/v1/lectures", createLectureRequest{
		Title: "New Lecture", Date: "2025-02-01", Duration: 600, FileType: "video",
	}, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if len(repo.created) != 0 {
		t.Fatalf("lecture should not have been created")
	}
}

func TestCreateLecture_ReturnsCreatedLecture(t *testing.T) {
	repo := &mockRepository{}
	srv := newTestServer(t, repo, &mockAnswerer{})

	var dto lectureDTO
	status := postJSON(t, srv.URL+"/api/v1/lectures", createLectureRequest{
		Title: "New Lecture", Date: "2025-02-01", Duration: 600, FileType: "document",
	}, &dto)
	if status != http.StatusCreated {
		t.Fatalf("expected 201, got %d", status)
	}
	if dto.ID != "created-1" || dto.Date != "2025-02-01" || dto.FileType != "document" {
		t.Fatalf("unexpected lecture payload: %+v", dto)
	}
}

func TestSubmitQuizAnswer_WithoutSelectionConflicts(t *testing.T) {
	srv := newTestServer(t, &mockRepository{detail: testDetail()}, &mockAnswerer{})

	status := postJSON(t, srv.URL+"/api/v1/lectures/lecture-1/quiz/submit", map[string]any{}, nil)
	if status != http.StatusConflict {
		t.Fatalf("expected 409, got %d", status)
	}
}

func TestQuizFlow_SelectThenSubmit(t *testing.T) {
	srv := newTestServer(t, &mockRepository{detail: testDetail()}, &mockAnswerer{})
	base := srv.URL + "/api/v1/lectures/lecture-1/quiz"

	var state quizStateDTO
	if status := postJSON(t, base+"/select", map[string]int{"option": 1}, &state); status != http.StatusOK {
		t.Fatalf("select: expected 200, got %d", status)
	}
	if state.Selected == nil || *state.Selected != 1 {
		t.Fatalf("expected selected option 1, got %+v", state.Selected)
	}

	var result struct {
		Correct      bool         `json:"correct"`
		CorrectIndex int          `json:"correctIndex"`
		Quiz         quizStateDTO `json:"quiz"`
	}
	if status := postJSON(t, base+"/submit", map[string]any{}, &result); status != http.StatusOK {
		t.Fatalf("submit: expected 200, got %d", status)
	}
	if !result.Correct || result.CorrectIndex != 1 {
		t.Fatalf("expected correct answer feedback, got %+v", result)
	}
	if result.Quiz.State != "submitted" {
		t.Fatalf("expected submitted state, got %s", result.Quiz.State)
	}
}

func TestRateFlashcard_BeforeRevealConflicts(t *testing.T) {
	srv := newTestServer(t, &mockRepository{detail: testDetail()}, &mockAnswerer{})

	status := postJSON(t, srv.URL+"/api/v1/lectures/lecture-1/flashcards/rate", map[string]int{"difficulty": 3}, nil)
	if status != http.StatusConflict {
		t.Fatalf("expected 409, got %d", status)
	}
}

func TestSendChatMessage_BlankIsNotAccepted(t *testing.T) {
	srv := newTestServer(t, &mockRepository{detail: testDetail()}, &mockAnswerer{response: "hi"})

	var resp struct {
		Accepted bool         `json:"accepted"`
		Chat     chatStateDTO `json:"chat"`
	}
	status := postJSON(t, srv.URL+"/api/v1/lectures/lecture-1/chat", chatSendRequest{Message: "   "}, &resp)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if resp.Accepted {
		t.Fatalf("blank message should not be accepted")
	}
	if len(resp.Chat.Messages) != 1 {
		t.Fatalf("expected only the greeting, got %d messages", len(resp.Chat.Messages))
	}
}

func TestSendChatMessage_ReplyCarriesTimestampSpans(t *testing.T) {
	svc := &mockAnswerer{response: "Covered at [02:05] in the lecture."}
	srv := newTestServer(t, &mockRepository{detail: testDetail()}, svc)

	var resp struct {
		Accepted bool           `json:"accepted"`
		Message  chatMessageDTO `json:"message"`
	}
	status := postJSON(t, srv.URL+"/api/v1/lectures/lecture-1/chat", chatSendRequest{Message: "When is it covered?"}, &resp)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if !resp.Accepted {
		t.Fatalf("message should have been accepted")
	}

	var token *spanDTO
	for i := range resp.Message.Spans {
		if resp.Message.Spans[i].Token {
			token = &resp.Message.Spans[i]
		}
	}
	if token == nil {
		t.Fatalf("expected a timestamp token span, got %+v", resp.Message.Spans)
	}
	if token.Text != "[02:05]" || token.Seconds != 125 {
		t.Fatalf("unexpected token span: %+v", token)
	}
}

func TestSeekPlayback_ClampsAndReportsActiveSegments(t *testing.T) {
	srv := newTestServer(t, &mockRepository{detail: testDetail()}, &mockAnswerer{})
	url := srv.URL + "/api/v1/lectures/lecture-1/playback"

	raw, _ := json.Marshal(map[string]int{"position": 5000})
	req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT %s: %v", url, err)
	}
	defer resp.Body.Close()

	var state playbackStateDTO
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if state.Position != 3600 {
		t.Fatalf("expected clamp to 3600, got %d", state.Position)
	}
	if len(state.ActiveSegmentIDs) != 0 {
		t.Fatalf("no segment claims t=3600, got %v", state.ActiveSegmentIDs)
	}
}

func TestStreamChatMessage_StreamsUntilDone(t *testing.T) {
	svc := &mockAnswerer{response: "short reply"}
	srv := newTestServer(t, &mockRepository{detail: testDetail()}, svc)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/lectures/lecture-1/chat/stream"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("failed to dial websocket: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(chatSendRequest{Message: "hello"}); err != nil {
		t.Fatalf("failed to send question: %v", err)
	}

	var last streamFrame
	for {
		var frame streamFrame
		if err := conn.ReadJSON(&frame); err != nil {
			t.Fatalf("failed to read frame: %v", err)
		}
		if !frame.Done && !strings.HasPrefix(svc.response, frame.Content) {
			t.Fatalf("frame %q is not a prefix of the reply", frame.Content)
		}
		if frame.Done {
			last = frame
			break
		}
	}
	if last.Content != svc.response {
		t.Fatalf("final frame should carry the full reply, got %q", last.Content)
	}
	if last.ID == "" {
		t.Fatalf("final frame should carry the committed message id")
	}
}
