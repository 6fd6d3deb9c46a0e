package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/neziw/releasecheck/pkg/domain/model"
)

type checkUseCase struct {
	template Builder
}

// NewCheck creates a CheckUseCase. Each call builds its own Checker from template, so results are never shared between requests.
func NewCheck(template Builder) *checkUseCase {
	return &checkUseCase{template: template}
}

// Check compares version with the releases of owner/repo
func (uc *checkUseCase) Check(ctx context.Context, owner, repo, version, tag string) (*model.CheckResult, error) {
	checker, err := uc.template.WithOwner(owner).WithRepository(repo).Build()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build checker")
	}
	return checker.Check(ctx, version, tag)
}
