package usecase

import (
	"context"
)

// InitProjectParams contains parameters for initializing the output file
type InitProjectParams struct{}

// InitProjectResult contains the result of initializing the output file
type InitProjectResult struct {
	OutputFile string
	Created    bool
}

// InitProject creates an empty output file so deployments can be recorded
type InitProject struct {
	output OutputStore
}

// NewInitProject creates a new InitProject use case
func NewInitProject(output OutputStore) *InitProject {
	return &InitProject{output: output}
}

// Run executes the use case
func (uc *InitProject) Run(ctx context.Context, params InitProjectParams) (*InitProjectResult, error) {
	created, err := uc.output.Init(ctx)
	if err != nil {
		return nil, err
	}
	return &InitProjectResult{
		OutputFile: uc.output.Path(),
		Created:    created,
	}, nil
}
