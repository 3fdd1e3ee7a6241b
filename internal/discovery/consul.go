package discovery

import (
	"context"
	"fmt"

	"github.com/hashicorp/consul/api"
	"github.com/rs/zerolog/log"
)

// ConsulDiscovery Consul实现的服务注册
type ConsulDiscovery struct {
	client *api.Client
}

// NewConsulDiscovery 创建Consul服务注册实例
func NewConsulDiscovery(address string, token string) (*ConsulDiscovery, error) {
	config := api.DefaultConfig()
	config.Address = address
	if token != "" {
		config.Token = token
	}

	client, err := api.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create consul client: %w", err)
	}

	return &ConsulDiscovery{
		client: client,
	}, nil
}

// Register 注册服务到Consul
func (c *ConsulDiscovery) Register(ctx context.Context, service *ServiceInfo) error {
	if service.ID == "" {
		return fmt.Errorf("service ID cannot be empty")
	}
	if service.Name == "" {
		return fmt.Errorf("service name cannot be empty")
	}

	registration := &api.AgentServiceRegistration{
		ID:      service.ID,
		Name:    service.Name,
		Address: service.Address,
		Port:    service.Port,
		Tags:    service.Tags,
		Meta:    service.Meta,
	}

	// 配置健康检查
	if service.Check != nil {
		check := &api.AgentServiceCheck{}

		switch service.Check.Type {
		case "http":
			check.HTTP = fmt.Sprintf("http://%s:%d%s", service.Address, service.Port, service.Check.Path)
			check.Method = "GET"
		case "tcp":
			check.TCP = fmt.Sprintf("%s:%d", service.Address, service.Port)
		default:
			return fmt.Errorf("unsupported health check type: %s", service.Check.Type)
		}

		check.Interval = service.Check.Interval.String()
		check.Timeout = service.Check.Timeout.String()

		if service.Check.DeregisterCriticalServiceAfter > 0 {
			check.DeregisterCriticalServiceAfter = service.Check.DeregisterCriticalServiceAfter.String()
		}

		registration.Check = check
	}

	opts := api.ServiceRegisterOpts{}.WithContext(ctx)
	if err := c.client.Agent().ServiceRegisterOpts(registration, opts); err != nil {
		return fmt.Errorf("failed to register service %s: %w", service.ID, err)
	}

	log.Info().
		Str("service_id", service.ID).
		Str("service_name", service.Name).
		Str("address", service.Address).
		Int("port", service.Port).
		Strs("tags", service.Tags).
		Msg("Service registered successfully")

	return nil
}

// Deregister 从Consul注销服务
func (c *ConsulDiscovery) Deregister(ctx context.Context, serviceID string) error {
	q := (&api.QueryOptions{}).WithContext(ctx)
	if err := c.client.Agent().ServiceDeregisterOpts(serviceID, q); err != nil {
		return fmt.Errorf("failed to deregister service %s: %w", serviceID, err)
	}

	log.Info().
		Str("service_id", serviceID).
		Msg("Service deregistered successfully")

	return nil
}

// Close 关闭Consul连接
func (c *ConsulDiscovery) Close() error {
	// Consul客户端通常不需要显式关闭
	return nil
}
