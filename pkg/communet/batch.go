package communet

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Static errors for err113 compliance.
var (
	ErrUnsupportedResourceType  = errors.New("unsupported resource type")
	ErrUnsupportedOperationType = errors.New("unsupported operation type")
	ErrInvalidDataTypeBoard     = errors.New("invalid data type for board operation")
	ErrInvalidDataTypeMessage   = errors.New("invalid data type for message operation")
	ErrInvalidDataTypeUser      = errors.New("invalid data type for user operation")
)

// BatchOperation represents a single operation in a batch.
type BatchOperation struct {
	ID       string
	Type     string // "create", "get", "delete"
	Resource string // "board", "message", "user"
	Data     interface{}
}

// BatchResult represents the result of a batch operation.
type BatchResult struct {
	ID       string
	Success  bool
	Data     interface{}
	Error    error
	Duration time.Duration
}

// BatchExecutor runs a list of operations against the client, collecting a
// result per operation instead of stopping at the first failure. Operations
// run sequentially in submission order; the client issues no concurrent
// requests on the batch's behalf.
type BatchExecutor struct {
	client Client
}

// NewBatchExecutor creates a new batch executor.
func NewBatchExecutor(client Client) *BatchExecutor {
	return &BatchExecutor{client: client}
}

// Execute runs every operation and returns one result per operation, in
// order. Individual failures are recorded on the result, never returned as an
// error; only a context cancellation aborts the batch.
func (e *BatchExecutor) Execute(ctx context.Context, operations []BatchOperation) ([]BatchResult, error) {
	results := make([]BatchResult, 0, len(operations))

	for _, operation := range operations {
		if err := ctx.Err(); err != nil {
			return results, fmt.Errorf("batch aborted: %w", err)
		}

		start := time.Now()
		result := e.executeOne(ctx, operation)
		result.Duration = time.Since(start)

		results = append(results, result)
	}

	return results, nil
}

func (e *BatchExecutor) executeOne(ctx context.Context, operation BatchOperation) BatchResult {
	result := BatchResult{ID: operation.ID}

	var (
		data interface{}
		err  error
	)

	switch operation.Resource {
	case "board":
		data, err = e.boardOperation(ctx, operation)
	case "message":
		data, err = e.messageOperation(ctx, operation)
	case "user":
		data, err = e.userOperation(ctx, operation)
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedResourceType, operation.Resource)
	}

	result.Success = err == nil
	result.Data = data
	result.Error = err

	return result
}

func (e *BatchExecutor) boardOperation(ctx context.Context, operation BatchOperation) (interface{}, error) {
	switch operation.Type {
	case "create":
		request, ok := operation.Data.(*BoardCreateRequest)
		if !ok {
			return nil, fmt.Errorf("%w: create", ErrInvalidDataTypeBoard)
		}

		// Structured-return path so one duplicate board does not abort the
		// rest of the batch.
		return e.client.Boards().CreateWithFields(ctx, request, ReturnFields{
			ReturnID:            true,
			ReturnStatus:        true,
			ReturnErrorMessages: true,
		})
	case "get":
		boardID, ok := operation.Data.(string)
		if !ok {
			return nil, fmt.Errorf("%w: get", ErrInvalidDataTypeBoard)
		}

		return e.client.Boards().Get(ctx, boardID)
	case "delete":
		boardID, ok := operation.Data.(string)
		if !ok {
			return nil, fmt.Errorf("%w: delete", ErrInvalidDataTypeBoard)
		}

		return nil, e.client.Boards().Delete(ctx, boardID)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedOperationType, operation.Type)
	}
}

func (e *BatchExecutor) messageOperation(ctx context.Context, operation BatchOperation) (interface{}, error) {
	switch operation.Type {
	case "create":
		request, ok := operation.Data.(*MessageCreateRequest)
		if !ok {
			return nil, fmt.Errorf("%w: create", ErrInvalidDataTypeMessage)
		}

		return e.client.Messages().CreateWithFields(ctx, request, ReturnFields{
			ReturnID:            true,
			ReturnURL:           true,
			ReturnStatus:        true,
			ReturnErrorMessages: true,
		})
	case "get":
		messageID, ok := operation.Data.(string)
		if !ok {
			return nil, fmt.Errorf("%w: get", ErrInvalidDataTypeMessage)
		}

		return e.client.Messages().Get(ctx, messageID)
	case "delete":
		messageID, ok := operation.Data.(string)
		if !ok {
			return nil, fmt.Errorf("%w: delete", ErrInvalidDataTypeMessage)
		}

		return nil, e.client.Messages().Delete(ctx, messageID)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedOperationType, operation.Type)
	}
}

func (e *BatchExecutor) userOperation(ctx context.Context, operation BatchOperation) (interface{}, error) {
	switch operation.Type {
	case "create":
		request, ok := operation.Data.(*UserCreateRequest)
		if !ok {
			return nil, fmt.Errorf("%w: create", ErrInvalidDataTypeUser)
		}

		return e.client.Users().Create(ctx, request)
	case "get":
		userID, ok := operation.Data.(string)
		if !ok {
			return nil, fmt.Errorf("%w: get", ErrInvalidDataTypeUser)
		}

		return e.client.Users().Get(ctx, userID)
	case "delete":
		userID, ok := operation.Data.(string)
		if !ok {
			return nil, fmt.Errorf("%w: delete", ErrInvalidDataTypeUser)
		}

		return nil, e.client.Users().Delete(ctx, userID)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedOperationType, operation.Type)
	}
}
