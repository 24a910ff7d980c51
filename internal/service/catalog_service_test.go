package service

import (
	"context"
	"errors"
	"testing"

	"fittrack/fitness-tracker/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newCatalogFixture() (*fakeClassRepo, *fakeTrainerRepo, CatalogService) {
	classRepo := newFakeClassRepo()
	trainerRepo := newFakeTrainerRepo()
	svc := NewCatalogService(classRepo, trainerRepo)
	return classRepo, trainerRepo, svc
}

func TestAddClassAppliesDefaultIntensity(t *testing.T) {
	_, _, svc := newCatalogFixture()

	class, err := svc.Add(context.Background(), &domain.Class{Name: "Pilates"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if len(class.Intensity) != len(domain.DefaultIntensity) {
		t.Fatalf("expected default intensity levels, got %v", class.Intensity)
	}
}

func TestAddClassDuplicateName(t *testing.T) {
	_, _, svc := newCatalogFixture()
	ctx := context.Background()

	if _, err := svc.Add(ctx, &domain.Class{Name: "Pilates"}); err != nil {
		t.Fatalf("first Add failed: %v", err)
	}
	_, err := svc.Add(ctx, &domain.Class{Name: "Pilates"})
	if !errors.Is(err, ErrClassAlreadyExists) {
		t.Fatalf("expected ErrClassAlreadyExists, got %v", err)
	}
}

func TestGetDetailListsOnlyActiveTrainers(t *testing.T) {
	_, trainerRepo, svc := newCatalogFixture()
	ctx := context.Background()

	class, err := svc.Add(ctx, &domain.Class{Name: "Yoga"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	trainerRepo.Create(ctx, &domain.Trainer{
		FullName: "Active Ana", Email: "ana@example.com",
		Status: domain.TrainerActive, Classes: []string{"Yoga"},
	})
	trainerRepo.Create(ctx, &domain.Trainer{
		FullName: "Pending Pat", Email: "pat@example.com",
		Status: domain.TrainerPending, Classes: []string{"Yoga"},
	})

	detail, err := svc.GetDetail(ctx, class.ID)
	if err != nil {
		t.Fatalf("GetDetail failed: %v", err)
	}
	if detail.Class.Name != "Yoga" {
		t.Fatalf("unexpected class: %q", detail.Class.Name)
	}
	if len(detail.Trainers) != 1 || detail.Trainers[0].Email != "ana@example.com" {
		t.Fatalf("only active trainers belong in the detail view, got %+v", detail.Trainers)
	}
}

func TestGetDetailNotFound(t *testing.T) {
	_, _, svc := newCatalogFixture()

	_, err := svc.GetDetail(context.Background(), primitive.NewObjectID())
	if !errors.Is(err, ErrClassNotFound) {
		t.Fatalf("expected ErrClassNotFound, got %v", err)
	}
}
