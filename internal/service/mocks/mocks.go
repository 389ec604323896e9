package mocks

import (
	"context"
	"image"

	"github.com/stretchr/testify/mock"

	"github.com/8FAX/HoyoHelper/internal/hoyolab"
	"github.com/8FAX/HoyoHelper/internal/model"
)

type MockPortalAPI struct {
	mock.Mock
}

func (m *MockPortalAPI) CheckSignedIn(ctx context.Context, cookie string, links hoyolab.Links) (bool, error) {
	args := m.Called(ctx, cookie, links)
	return args.Bool(0), args.Error(1)
}

func (m *MockPortalAPI) FetchAwards(ctx context.Context, cookie string, links hoyolab.Links) ([]model.Award, error) {
	args := m.Called(ctx, cookie, links)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Award), args.Error(1)
}

func (m *MockPortalAPI) FetchDayCount(ctx context.Context, cookie string, links hoyolab.Links) (int, error) {
	args := m.Called(ctx, cookie, links)
	return args.Int(0), args.Error(1)
}

func (m *MockPortalAPI) FetchRefreshTime(ctx context.Context, cookie string, links hoyolab.Links) (string, error) {
	args := m.Called(ctx, cookie, links)
	return args.String(0), args.Error(1)
}

func (m *MockPortalAPI) Claim(ctx context.Context, cookie string, links hoyolab.Links) (bool, error) {
	args := m.Called(ctx, cookie, links)
	return args.Bool(0), args.Error(1)
}

type MockCardRenderer struct {
	mock.Mock
}

func (m *MockCardRenderer) Render(ctx context.Context, data *model.CardData, game string) (image.Image, error) {
	args := m.Called(ctx, data, game)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(image.Image), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, message string, card image.Image) error {
	args := m.Called(ctx, message, card)
	return args.Error(0)
}
