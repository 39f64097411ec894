package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/region-map-service/internal/usecase"
	"github.com/region-map-service/internal/usecase/dto"
)

func TestHierarchyUseCase_Children(t *testing.T) {
	repo := &MockHierarchyRepository{}
	repo.On("ChildrenOf", []string{}).Return([]string{"Chhattisgarh", "Odisha"})
	repo.On("ChildrenOf", []string{"Odisha"}).Return([]string{"Koraput", "Mayurbhanj"})
	repo.On("ChildrenOf", []string{"Odisha", "Koraput", "Jeypore", "Badajamunda"}).Return([]string{"Village A"})

	uc := usecase.NewHierarchyUseCase(repo)

	resp := uc.Children(dto.ChildrenRequest{})
	assert.Equal(t, "states", resp.Level)
	assert.Equal(t, []string{"Chhattisgarh", "Odisha"}, resp.Children)

	resp = uc.Children(dto.ChildrenRequest{Path: []string{" Odisha ", "", "ignored"}})
	assert.Equal(t, []string{"Odisha"}, resp.Path)
	assert.Equal(t, "districts", resp.Level)
	assert.Equal(t, []string{"Koraput", "Mayurbhanj"}, resp.Children)

	resp = uc.Children(dto.ChildrenRequest{Path: []string{"Odisha", "Koraput", "Jeypore", "Badajamunda"}})
	assert.Equal(t, "villages", resp.Level)
	assert.Equal(t, []string{"Village A"}, resp.Children)
}

func TestHierarchyUseCase_Districts(t *testing.T) {
	repo := &MockHierarchyRepository{}
	repo.On("ResolveState", "odisha").Return("Odisha", true)
	repo.On("ResolveState", "Atlantis").Return("", false)
	repo.On("ChildrenOf", []string{"Odisha"}).Return([]string{"Koraput"})

	uc := usecase.NewHierarchyUseCase(repo)

	assert.Equal(t, []string{"Koraput"}, uc.Districts("odisha"))
	assert.Equal(t, []string{}, uc.Districts("Atlantis"))
}
