package discovery

import (
	"context"
	"time"
)

// ServiceDiscovery 服务注册接口
type ServiceDiscovery interface {
	// 注册服务
	Register(ctx context.Context, service *ServiceInfo) error

	// 注销服务
	Deregister(ctx context.Context, serviceID string) error

	// 关闭连接
	Close() error
}

// ServiceInfo 服务信息
type ServiceInfo struct {
	ID      string            // 服务实例ID
	Name    string            // 服务名称
	Address string            // 服务地址
	Port    int               // 服务端口
	Tags    []string          // 服务标签
	Meta    map[string]string // 元数据
	Check   *HealthCheck      // 健康检查配置
}

// HealthCheck 健康检查配置
type HealthCheck struct {
	Type                           string // "http", "tcp"
	Interval                       time.Duration
	Timeout                        time.Duration
	DeregisterCriticalServiceAfter time.Duration
	Path                           string // HTTP健康检查路径
}

// Registration 管理网关实例自身的注册状态
type Registration struct {
	discovery  ServiceDiscovery
	service    *ServiceInfo
	registered bool
}

// NewRegistration 创建注册管理器
func NewRegistration(discovery ServiceDiscovery, service *ServiceInfo) *Registration {
	return &Registration{
		discovery: discovery,
		service:   service,
	}
}

// Register 注册服务
func (r *Registration) Register(ctx context.Context) error {
	if r.registered {
		return nil
	}

	if err := r.discovery.Register(ctx, r.service); err != nil {
		return err
	}

	r.registered = true
	return nil
}

// Deregister 注销服务
func (r *Registration) Deregister(ctx context.Context) error {
	if !r.registered {
		return nil
	}

	if err := r.discovery.Deregister(ctx, r.service.ID); err != nil {
		return err
	}

	r.registered = false
	return nil
}

// IsRegistered 检查是否已注册
func (r *Registration) IsRegistered() bool {
	return r.registered
}

// Service 返回注册的服务信息
func (r *Registration) Service() *ServiceInfo {
	return r.service
}

// Close 注销并关闭注册管理器
func (r *Registration) Close(ctx context.Context) error {
	if err := r.Deregister(ctx); err != nil {
		return err
	}
	return r.discovery.Close()
}
