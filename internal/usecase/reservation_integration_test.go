//go:build integration

package usecase

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"theatre-booking/internal/data/repository"
	"theatre-booking/internal/dto/request"
	"theatre-booking/pkg/broker"
	"theatre-booking/pkg/database"
	"theatre-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Run with: DB_NAME=... DB_USER=... DB_PASSWORD=... go test -tags integration ./internal/usecase/
func TestCreateReservation_ConcurrentSameSeat(t *testing.T) {
	if os.Getenv("DB_NAME") == "" {
		t.Skip("DB_NAME not set")
	}

	config, err := utils.LoadConfig()
	require.NoError(t, err)
	require.NoError(t, database.Migrate(config.Database, zap.NewNop()))

	db, err := database.InitDB(config.Database)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	ctx := context.Background()

	var hallID, playID, performanceID int64
	require.NoError(t, db.QueryRow(ctx,
		`INSERT INTO theatre_halls (name, rows, seats_in_row) VALUES ('Race hall', 2, 2) RETURNING id`,
	).Scan(&hallID))
	require.NoError(t, db.QueryRow(ctx,
		`INSERT INTO plays (title) VALUES ('Race play') RETURNING id`,
	).Scan(&playID))
	require.NoError(t, db.QueryRow(ctx,
		`INSERT INTO performances (play_id, theatre_hall_id, show_time) VALUES ($1, $2, $3) RETURNING id`,
		playID, hallID, time.Now().Add(24*time.Hour),
	).Scan(&performanceID))
	t.Cleanup(func() {
		db.Exec(context.Background(), `DELETE FROM plays WHERE id = $1`, playID)
		db.Exec(context.Background(), `DELETE FROM theatre_halls WHERE id = $1`, hallID)
	})

	const buyers = 8
	userIDs := make([]uuid.UUID, buyers)
	for i := range userIDs {
		userIDs[i] = uuid.New()
		_, err := db.Exec(ctx,
			`INSERT INTO users (id, email, password) VALUES ($1, $2, 'x')`,
			userIDs[i], userIDs[i].String()+"@race.test",
		)
		require.NoError(t, err)
	}
	t.Cleanup(func() {
		db.Exec(context.Background(), `DELETE FROM users WHERE id = ANY($1)`, userIDs)
	})

	log := zap.NewNop()
	svc := NewReservationService(repository.NewRepository(db, log), broker.NewNoopPublisher(log), log)

	req := &request.CreateReservationRequest{
		Tickets: []request.TicketRequest{{Row: 1, Seat: 2, Performance: performanceID}},
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		conflicts int
		others    []error
	)
	start := make(chan struct{})
	for _, userID := range userIDs {
		wg.Add(1)
		go func(userID uuid.UUID) {
			defer wg.Done()
			<-start
			_, err := svc.CreateReservation(ctx, userID, req)

			mu.Lock()
			defer mu.Unlock()
			var conflictErr *ConflictError
			switch {
			case err == nil:
				created++
			case errors.As(err, &conflictErr):
				conflicts++
			default:
				others = append(others, err)
			}
		}(userID)
	}
	close(start)
	wg.Wait()

	assert.Empty(t, others)
	assert.Equal(t, 1, created)
	assert.Equal(t, buyers-1, conflicts)

	var tickets, reservations int
	require.NoError(t, db.QueryRow(ctx,
		`SELECT COUNT(*) FROM tickets WHERE performance_id = $1`, performanceID,
	).Scan(&tickets))
	require.NoError(t, db.QueryRow(ctx,
		`SELECT COUNT(*) FROM reservations WHERE user_id = ANY($1)`, userIDs,
	).Scan(&reservations))

	assert.Equal(t, 1, tickets)
	assert.Equal(t, 1, reservations, "losing reservations must roll back")
}
