package playtomic

import (
	"context"
	"sync"
)

// MockClient is a mock implementation of the PlaytomicClient interface for testing.
// It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	// Spies for method calls
	GetMatchesFunc func(params *SearchMatchesParams) ([]MatchSummary, error)
	GetBookingFunc func(matchID string) (Booking, error)

	// Call records
	GetMatchesCalls []*SearchMatchesParams
	GetBookingCalls []string
}

// NewMockClient creates a new mock instance.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Reset clears all call records.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetMatchesCalls = nil
	m.GetBookingCalls = nil
}

func (m *MockClient) GetMatches(ctx context.Context, params *SearchMatchesParams) ([]MatchSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetMatchesCalls = append(m.GetMatchesCalls, params)
	if m.GetMatchesFunc != nil {
		return m.GetMatchesFunc(params)
	}
	return []MatchSummary{}, nil
}

func (m *MockClient) GetBooking(ctx context.Context, matchID string) (Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetBookingCalls = append(m.GetBookingCalls, matchID)
	if m.GetBookingFunc != nil {
		return m.GetBookingFunc(matchID)
	}
	return Booking{}, nil
}
