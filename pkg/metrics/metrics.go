// Package metrics define o provedor de métricas da aplicação.
// Quando nenhum endereço statsd é configurado, um provedor noop é usado
// e a instrumentação vira um no-op sem custo para os handlers.
package metrics

import (
	"fmt"

	"github.com/DataDog/datadog-go/v5/statsd"
)

// Provider abstrai o sink de métricas consumido pelo middleware HTTP.
type Provider interface {
	Count(name string, value int64, tags []string) error
}

// NoopProvider é o placeholder para quando métricas estão desabilitadas.
type NoopProvider struct{}

func (n *NoopProvider) Count(name string, value int64, tags []string) error { return nil }

// DatadogProvider adapta a lib oficial do Datadog para nossa interface.
type DatadogProvider struct {
	client *statsd.Client
}

func (d *DatadogProvider) Count(name string, value int64, tags []string) error {
	return d.client.Count(name, value, tags, 1)
}

// Setup inicializa o provedor correto: Datadog quando addr está definido,
// noop caso contrário.
func Setup(addr string) (Provider, error) {
	if addr == "" {
		return &NoopProvider{}, nil
	}

	client, err := statsd.New(addr, statsd.WithNamespace("user_storage_api."))
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar no statsd: %w", err)
	}
	return &DatadogProvider{client: client}, nil
}
