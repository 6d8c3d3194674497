package services

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"user-registry-api/internal/application/ports"
	domain "user-registry-api/internal/domain/user"
	"user-registry-api/internal/interface/api/rest/dto/user"
)

const TracerName = "user-registry-api/internal/application/services"

// TracedUserService opens one span per operation around the inner service.
type TracedUserService struct {
	inner  ports.UserService
	tracer trace.Tracer
}

func NewTracedUserService(inner ports.UserService, tracer trace.Tracer) ports.UserService {
	return &TracedUserService{inner: inner, tracer: tracer}
}

func (s *TracedUserService) Create(ctx context.Context, d domain.Draft) (user.Resource, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Create")
	defer span.End()

	res, err := s.inner.Create(ctx, d)
	if err != nil {
		return res, recordError(span, err)
	}
	span.SetAttributes(attribute.String("user.id", res.ID.String()))

	return res, nil
}

func (s *TracedUserService) FindAll(ctx context.Context) (user.Resources, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.FindAll")
	defer span.End()

	res, err := s.inner.FindAll(ctx)
	if err != nil {
		return nil, recordError(span, err)
	}
	span.SetAttributes(attribute.Int("user.count", len(res)))

	return res, nil
}

func (s *TracedUserService) FindOne(ctx context.Context, uuid domain.UUID) (user.Resource, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.FindOne", trace.WithAttributes(attribute.String("user.id", uuid.String())))
	defer span.End()

	res, err := s.inner.FindOne(ctx, uuid)
	if err != nil {
		return res, recordError(span, err)
	}

	return res, nil
}

func (s *TracedUserService) Update(ctx context.Context, uuid domain.UUID, p domain.Patch) (user.Resource, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Update", trace.WithAttributes(attribute.String("user.id", uuid.String())))
	defer span.End()

	res, err := s.inner.Update(ctx, uuid, p)
	if err != nil {
		return res, recordError(span, err)
	}

	return res, nil
}

func (s *TracedUserService) Remove(ctx context.Context, uuid domain.UUID) (user.Message, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Remove", trace.WithAttributes(attribute.String("user.id", uuid.String())))
	defer span.End()

	res, err := s.inner.Remove(ctx, uuid)
	if err != nil {
		return res, recordError(span, err)
	}

	return res, nil
}

// recordError marks the span as failed only for errors the core does not
// own; rejected input is an expected outcome.
func recordError(span trace.Span, err error) error {
	var uErr *domain.Error
	if errors.As(err, &uErr) {
		span.SetAttributes(attribute.String("user.error_kind", uErr.Kind.Error()))
		return err
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	return err
}
