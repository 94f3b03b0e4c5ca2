package store

import (
	"context"

	"github.com/agentstation/lessonmap/pkg/errors"
	"github.com/agentstation/lessonmap/pkg/lessons"
)

// GetByID returns the lesson with id.
func (s *Store) GetByID(ctx context.Context, id string) (lessons.Lesson, error) {
	all, err := s.LoadAll(ctx)
	if err != nil {
		return lessons.Lesson{}, err
	}
	l, ok := lessons.Find(all, id)
	if !ok {
		return lessons.Lesson{}, errors.NewNotFoundError("lesson", id)
	}
	return l, nil
}

// GetAudioPath returns the managed audio path of the lesson with id.
func (s *Store) GetAudioPath(ctx context.Context, id string) (string, error) {
	l, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return l.AudioPath, nil
}

// GetAllGrouped returns the Subject, SubSubject, Lesson tree.
func (s *Store) GetAllGrouped(ctx context.Context) ([]lessons.SubjectNode, error) {
	all, err := s.LoadAll(ctx)
	return lessons.Group(all), err
}

// GetDistinctSubjects returns the sorted unique subjects.
func (s *Store) GetDistinctSubjects(ctx context.Context) ([]string, error) {
	all, err := s.LoadAll(ctx)
	return lessons.DistinctSubjects(all), err
}

// GetDistinctSubSubjects returns the sorted unique sub-subjects of subject.
func (s *Store) GetDistinctSubSubjects(ctx context.Context, subject string) ([]string, error) {
	all, err := s.LoadAll(ctx)
	return lessons.DistinctSubSubjects(all, subject), err
}
