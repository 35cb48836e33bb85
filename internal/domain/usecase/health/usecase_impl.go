package health

import (
	"context"

	"weather-widget/internal/domain/gateway/state"
	"weather-widget/internal/domain/model"
)

// ProviderInfo describes the weather provider; the credential is read on every check
type ProviderInfo struct {
	BaseURL    string
	Credential func() string
}

type healthUseCase struct {
	provider     ProviderInfo
	stateGateway state.StateGateway
}

func NewHealthUseCase(provider ProviderInfo, stateGateway state.StateGateway) UseCase {
	return &healthUseCase{
		provider:     provider,
		stateGateway: stateGateway,
	}
}

func (useCase *healthUseCase) CheckHealth(ctx context.Context) model.HealthResponse {
	providerHealth := useCase.providerHealth()
	stateHealth := useCase.stateGateway.Health(ctx)

	overallStatus := model.StatusUp
	if providerHealth.Status != model.StatusUp || stateHealth.Status != model.StatusUp {
		overallStatus = model.StatusDown
	}

	return model.HealthResponse{
		Status:     overallStatus,
		Provider:   providerHealth,
		StateStore: stateHealth,
	}
}

// providerHealth reports DOWN while no API key is configured; the provider itself is not called
func (useCase *healthUseCase) providerHealth() model.ComponentHealthStatus {
	details := map[string]string{"baseUrl": useCase.provider.BaseURL}

	if useCase.provider.Credential == nil || useCase.provider.Credential() == "" {
		details["error"] = "API key is not configured"
		return model.ComponentHealthStatus{Status: model.StatusDown, Details: details}
	}

	return model.ComponentHealthStatus{Status: model.StatusUp, Details: details}
}
