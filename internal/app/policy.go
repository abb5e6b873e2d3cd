package app

import "github.com/dkeye/roomrelay/internal/core"

type DeliveryAction int

const (
	NoAction DeliveryAction = iota
	EvictMember
)

// Policy decides what happens to a room member whose fan-out write failed.
type Policy interface {
	OnDeliveryFailure(res core.PublishResult, failed core.Delivery) DeliveryAction
}

type SimplePolicy struct{}

func (SimplePolicy) OnDeliveryFailure(core.PublishResult, core.Delivery) DeliveryAction {
	return EvictMember
}

// TolerantPolicy keeps members regardless of write errors; the idle sweep reclaims them.
type TolerantPolicy struct{}

func (TolerantPolicy) OnDeliveryFailure(core.PublishResult, core.Delivery) DeliveryAction {
	return NoAction
}
