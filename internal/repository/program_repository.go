package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/brightprep/studycal-api/internal/models"
	appErrors "github.com/brightprep/studycal-api/pkg/errors"
)

const programKeyPrefix = "program:"

// ProgramRepository stores generated study programs in Redis. Programs are
// immutable so a plain JSON blob with a TTL is all the persistence needed;
// expired programs are simply regenerated through a new purchase.
type ProgramRepository struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewProgramRepository constructs the repository.
func NewProgramRepository(client *redis.Client, ttl time.Duration, logger *zap.Logger) *ProgramRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProgramRepository{client: client, ttl: ttl, logger: logger}
}

// Put persists a program under its id.
func (r *ProgramRepository) Put(ctx context.Context, program *models.StudyProgram) error {
	payload, err := json.Marshal(program)
	if err != nil {
		return fmt.Errorf("marshal program %s: %w", program.ID, err)
	}
	if err := r.client.Set(ctx, programKeyPrefix+program.ID, payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("store program %s: %w", program.ID, err)
	}
	return nil
}

// Get loads a program by id, returning ErrNotFound for unknown or expired ids.
func (r *ProgramRepository) Get(ctx context.Context, id string) (*models.StudyProgram, error) {
	raw, err := r.client.Get(ctx, programKeyPrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, appErrors.ErrNotFound
		}
		return nil, fmt.Errorf("load program %s: %w", id, err)
	}

	var program models.StudyProgram
	if err := json.Unmarshal(raw, &program); err != nil {
		return nil, fmt.Errorf("unmarshal program %s: %w", id, err)
	}
	return &program, nil
}

// Delete removes a stored program. Missing ids are not an error.
func (r *ProgramRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, programKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete program %s: %w", id, err)
	}
	return nil
}
