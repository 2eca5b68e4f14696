package notification

import (
	"cosmeshop/internal/domain/model"
	"cosmeshop/internal/logger"

	"go.uber.org/zap"
)

// Dispatcherは通知を非同期で投げる。失敗はログに残すだけで
// 呼び出し元のトランザクションには一切影響させない。
type Dispatcher struct {
	mailer Mailer
}

func NewDispatcher(mailer Mailer) *Dispatcher {
	return &Dispatcher{mailer: mailer}
}

func (d *Dispatcher) OrderConfirmation(user model.User, order model.Order, items []model.OrderItem) {
	d.dispatch("order_confirmation", func() error {
		return d.mailer.SendOrderConfirmation(user, order, items)
	})
}

func (d *Dispatcher) OrderStatusUpdate(user model.User, order model.Order, previousStatus model.OrderStatus) {
	d.dispatch("order_status_update", func() error {
		return d.mailer.SendOrderStatusUpdate(user, order, previousStatus)
	})
}

func (d *Dispatcher) Welcome(user model.User) {
	d.dispatch("welcome", func() error {
		return d.mailer.SendWelcome(user)
	})
}

func (d *Dispatcher) AccountApproved(user model.User) {
	d.dispatch("account_approved", func() error {
		return d.mailer.SendAccountApproved(user)
	})
}

func (d *Dispatcher) AccountRejected(user model.User, reason string) {
	d.dispatch("account_rejected", func() error {
		return d.mailer.SendAccountRejected(user, reason)
	})
}

func (d *Dispatcher) dispatch(kind string, send func() error) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.L().Error("notification panic",
					zap.String("kind", kind),
					zap.Any("panic", r))
			}
		}()

		if err := send(); err != nil {
			logger.L().Warn("notification send failed",
				zap.String("kind", kind),
				zap.Error(err))
		}
	}()
}
