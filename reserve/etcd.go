package reserve

import (
	"context"
	"fmt"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"
)

// EtcdOptions configures the etcd-backed reservation manager.
type EtcdOptions struct {
	// Endpoints is the list of etcd cluster endpoints.
	Endpoints []string

	// Namespace prefixes all reservation keys. Defaults to "goap".
	Namespace string

	// TTL is the claim lease duration in seconds. Claims expire when
	// the lease lapses, so a crashed agent cannot hold a resource
	// forever. Defaults to 30.
	TTL int

	// DialTimeout is the maximum time to wait for connection
	// establishment. Defaults to 5s.
	DialTimeout time.Duration
}

// EtcdManager implements Manager on etcd. Each claim is a key written
// under a lease via a CreateRevision==0 transaction, which makes the
// claim atomic across processes: exactly one agent's Put commits.
//
// Thread-safety: all methods are safe for concurrent use.
type EtcdManager struct {
	client    *clientv3.Client
	namespace string
	ttl       int
}

// NewEtcdManager connects to etcd and verifies connectivity.
func NewEtcdManager(opts EtcdOptions) (*EtcdManager, error) {
	if len(opts.Endpoints) == 0 {
		return nil, fmt.Errorf("etcd endpoints cannot be empty")
	}

	namespace := opts.Namespace
	if namespace == "" {
		namespace = "goap"
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 30
	}
	dialTimeout := opts.DialTimeout
	if dialTimeout == 0 {
		dialTimeout = 5 * time.Second
	}

	cli, err := clientv3.New(clientv3.Config{
		Endpoints:   opts.Endpoints,
		DialTimeout: dialTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create etcd client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if _, err := cli.Get(ctx, "health-check"); err != nil && err != context.DeadlineExceeded {
		cli.Close()
		return nil, fmt.Errorf("etcd health check failed: %w", err)
	}

	return &EtcdManager{client: cli, namespace: namespace, ttl: ttl}, nil
}

func (m *EtcdManager) key(resource string) string {
	return fmt.Sprintf("/%s/reserve/%s", m.namespace, resource)
}

// TryReserve implements Manager. The claim is written under a fresh
// lease so it expires if the holding agent disappears.
func (m *EtcdManager) TryReserve(ctx context.Context, resource, agent string) (bool, error) {
	key := m.key(resource)

	lease, err := m.client.Grant(ctx, int64(m.ttl))
	if err != nil {
		return false, fmt.Errorf("granting lease for %s: %w", resource, err)
	}

	resp, err := m.client.Txn(ctx).
		If(clientv3.Compare(clientv3.CreateRevision(key), "=", 0)).
		Then(clientv3.OpPut(key, agent, clientv3.WithLease(lease.ID))).
		Else(clientv3.OpGet(key)).
		Commit()
	if err != nil {
		return false, fmt.Errorf("claiming %s: %w", resource, err)
	}
	if resp.Succeeded {
		return true, nil
	}

	// The key exists; the unused lease would otherwise linger until TTL.
	if _, err := m.client.Revoke(ctx, lease.ID); err != nil {
		return false, fmt.Errorf("revoking unused lease for %s: %w", resource, err)
	}

	// Re-entrant: the existing claim may be ours.
	kvs := resp.Responses[0].GetResponseRange().Kvs
	if len(kvs) == 0 {
		return false, nil
	}
	return string(kvs[0].Value) == agent, nil
}

// Release implements Manager. The delete is conditional on the claim
// value so a stale release from a different agent is a no-op.
func (m *EtcdManager) Release(ctx context.Context, resource, agent string) error {
	key := m.key(resource)

	_, err := m.client.Txn(ctx).
		If(clientv3.Compare(clientv3.Value(key), "=", agent)).
		Then(clientv3.OpDelete(key)).
		Commit()
	if err != nil {
		return fmt.Errorf("releasing %s: %w", resource, err)
	}
	return nil
}

// IsAvailableFor implements Manager.
func (m *EtcdManager) IsAvailableFor(ctx context.Context, resource, agent string) (bool, error) {
	resp, err := m.client.Get(ctx, m.key(resource))
	if err != nil {
		return false, fmt.Errorf("inspecting claim on %s: %w", resource, err)
	}
	if len(resp.Kvs) == 0 {
		return true, nil
	}
	return string(resp.Kvs[0].Value) == agent, nil
}

// Close closes the etcd connection.
func (m *EtcdManager) Close() error {
	return m.client.Close()
}
