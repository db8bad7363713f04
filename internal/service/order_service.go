package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/fsdevblog/srochno-market/internal/config"
	"github.com/fsdevblog/srochno-market/internal/domain"
	"github.com/fsdevblog/srochno-market/internal/repository/repoargs"
	"github.com/fsdevblog/srochno-market/pkg/uow"
)

const orderIDBytes = 9 // 12 символов в base64url

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// OrderService хранилище заказов и машина состояний в одном флаконе: все
// переходы статусов проходят через него и фиксируются в одной транзакции
// с изменениями счетчиков и баланса.
//
// Дисциплина блокировок: строка заказа всегда берется раньше строк юзеров.
// Этот порядок общий для API-запросов и свипера, иначе возможен deadlock.
type OrderService struct {
	uow       uow.UOW
	orderRepo domain.OrderRepository
	takeRepo  domain.TakeRepository
	userRepo  domain.UserRepository
	ledger    Ledger
	notifier  Notifier
	rules     config.Rules
	now       func() time.Time
}

func NewOrderService(u uow.UOW, ledger Ledger, notifier Notifier, rules config.Rules) (*OrderService, error) {
	orderRepo, orderRepoErr := uow.GetRepositoryAs[domain.OrderRepository](u, uow.RepositoryName(repoargs.OrderRepoName))
	if orderRepoErr != nil {
		return nil, orderRepoErr
	}
	takeRepo, takeRepoErr := uow.GetRepositoryAs[domain.TakeRepository](u, uow.RepositoryName(repoargs.TakeRepoName))
	if takeRepoErr != nil {
		return nil, takeRepoErr
	}
	userRepo, userRepoErr := uow.GetRepositoryAs[domain.UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if userRepoErr != nil {
		return nil, userRepoErr
	}
	return &OrderService{
		uow:       u,
		orderRepo: orderRepo,
		takeRepo:  takeRepo,
		userRepo:  userRepo,
		ledger:    ledger,
		notifier:  notifier,
		rules:     rules,
		now:       time.Now,
	}, nil
}

// WithNow подменяет источник времени. Для тестов.
func (s *OrderService) WithNow(now func() time.Time) *OrderService {
	s.now = now
	return s
}

type CreateOrderArgs struct {
	Category    string
	Description string
	City        string
	Contact     string
}

// Create создает активный заказ. Контакт с уже существующим активным заказом
// дает domain.ErrConflict: один контакт - один активный заказ во всей системе.
func (s *OrderService) Create(ctx context.Context, clientID int64, args CreateOrderArgs) (*domain.Order, error) {
	if !domain.IsValidCategory(args.Category) {
		return nil, fmt.Errorf("unknown category %q: %w", args.Category, domain.ErrInvalid)
	}

	orderID, idErr := generateOrderID()
	if idErr != nil {
		return nil, fmt.Errorf("generating order id: %w", idErr)
	}

	var order *domain.Order
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		orderRepo, _, userRepo, reposErr := s.txRepos(tx)
		if reposErr != nil {
			return reposErr
		}

		if _, findErr := orderRepo.FindActiveByContact(c, args.Contact); findErr == nil {
			return fmt.Errorf("contact already has an active order: %w", domain.ErrConflict)
		} else if !errors.Is(findErr, domain.ErrRecordNotFound) {
			return findErr
		}

		var createErr error
		order, createErr = orderRepo.Create(c, repoargs.CreateOrder{
			ID:               orderID,
			ClientID:         clientID,
			Category:         args.Category,
			Description:      args.Description,
			City:             args.City,
			Contact:          args.Contact,
			ExpiresInMinutes: s.rules.OrderLifetimeMinutes,
		})
		if createErr != nil {
			// Гонка двух одновременных создании с одним контактом: проигравший
			// ловит нарушение частичного уникального индекса.
			return convertRepoErr(createErr)
		}

		return userRepo.AdjustCounters(c, clientID, repoargs.AdjustCounters{ActiveDelta: 1})
	})
	if txErr != nil {
		return nil, txErr
	}

	if s.notifier != nil {
		// Рассылка не на критическом пути: отвязываем от жизни запроса.
		go s.notifier.DispatchNewOrder(context.WithoutCancel(ctx), *order)
	}
	return order, nil
}

// OrderView заказ глазами конкретного юзера. Contact очищен,
// если вьювер не владелец и не взял заказ.
type OrderView struct {
	Order          domain.Order
	TakeCount      int
	ContactVisible bool
}

// Get возвращает заказ. deleted и closed_no_response видны только владельцу,
// для остальных они неотличимы от несуществующих.
func (s *OrderService) Get(ctx context.Context, viewerID int64, orderID string) (*OrderView, error) {
	order, getErr := s.orderRepo.GetByID(ctx, orderID)
	if getErr != nil {
		return nil, convertRepoErr(getErr)
	}
	if !domain.IsListableStatus(order.Status) && order.ClientID != viewerID {
		return nil, fmt.Errorf("order %s: %w", orderID, domain.ErrNotFound)
	}

	takes, takesErr := s.takeRepo.GetByOrderID(ctx, orderID)
	if takesErr != nil {
		return nil, takesErr //nolint:wrapcheck
	}

	visible := order.ClientID == viewerID
	for _, take := range takes {
		if take.ExecutorID == viewerID {
			visible = true
			break
		}
	}

	view := OrderView{Order: *order, TakeCount: len(takes), ContactVisible: visible}
	if !visible {
		view.Order.Contact = ""
	}
	return &view, nil
}

type ListOrdersArgs struct {
	Category string
	City     string
	Statuses []domain.OrderStatusType
	Mine     bool
	Limit    int
	Offset   int
}

// List возвращает страницу заказов и общее число подходящих. Публичная выдача
// ограничена статусами из domain.ListableStatuses и не содержит контактов;
// выдача "мои заказы" отдает владельцу все как есть.
func (s *OrderService) List(
	ctx context.Context,
	viewerID int64,
	args ListOrdersArgs,
) ([]domain.Order, int64, error) {
	limit := args.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	repoArgs := repoargs.ListOrders{
		Category: args.Category,
		City:     args.City,
		Limit:    limit,
		Offset:   args.Offset,
	}

	if args.Mine {
		repoArgs.ClientID = viewerID
		repoArgs.Statuses = args.Statuses
	} else {
		for _, status := range args.Statuses {
			if domain.IsListableStatus(status) {
				repoArgs.Statuses = append(repoArgs.Statuses, status)
			}
		}
		if len(repoArgs.Statuses) == 0 {
			repoArgs.Statuses = []domain.OrderStatusType{domain.OrderStatusActive}
		}
	}

	orders, total, listErr := s.orderRepo.List(ctx, repoArgs)
	if listErr != nil {
		return nil, 0, listErr //nolint:wrapcheck
	}
	if !args.Mine {
		for i := range orders {
			orders[i].Contact = ""
		}
	}
	return orders, total, nil
}

// Update частично обновляет заказ. Правки заморожены с первого take
// (domain.ErrForbidden) и после истечения срока жизни (domain.ErrGone).
// Город не редактируется никогда.
func (s *OrderService) Update(
	ctx context.Context,
	clientID int64,
	orderID string,
	patch repoargs.OrderPatch,
) (*domain.Order, error) {
	if patch.Category != nil && !domain.IsValidCategory(*patch.Category) {
		return nil, fmt.Errorf("unknown category %q: %w", *patch.Category, domain.ErrInvalid)
	}

	var updated *domain.Order
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		orderRepo, takeRepo, _, reposErr := s.txRepos(tx)
		if reposErr != nil {
			return reposErr
		}

		order, guardErr := s.lockOwnedEditable(c, orderRepo, takeRepo, clientID, orderID)
		if guardErr != nil {
			return guardErr
		}

		if patch.Contact != nil && *patch.Contact != order.Contact {
			if _, findErr := orderRepo.FindActiveByContact(c, *patch.Contact); findErr == nil {
				return fmt.Errorf("contact already has an active order: %w", domain.ErrConflict)
			} else if !errors.Is(findErr, domain.ErrRecordNotFound) {
				return findErr
			}
		}

		var updateErr error
		updated, updateErr = orderRepo.UpdateFields(c, orderID, patch)
		return convertRepoErr(updateErr)
	})
	if txErr != nil {
		return nil, txErr
	}
	return updated, nil
}

// Delete мягко удаляет заказ (статус deleted). Те же предусловия, что у Update.
func (s *OrderService) Delete(ctx context.Context, clientID int64, orderID string) error {
	return s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		orderRepo, takeRepo, userRepo, reposErr := s.txRepos(tx)
		if reposErr != nil {
			return reposErr
		}

		if _, guardErr := s.lockOwnedEditable(c, orderRepo, takeRepo, clientID, orderID); guardErr != nil {
			return guardErr
		}

		if statusErr := orderRepo.SetStatus(c, orderID, domain.OrderStatusDeleted); statusErr != nil {
			return convertRepoErr(statusErr)
		}
		return userRepo.AdjustCounters(c, clientID, repoargs.AdjustCounters{ActiveDelta: -1})
	})
}

// TakeResult результат взятия заказа исполнителем.
type TakeResult struct {
	Contact   string
	TakeCount int
	Balance   int64
}

// Take платное взятие заказа исполнителем. Протокол:
// блокируем заказ, отсеиваем терминальные и просроченные (просрочка
// фиксируется лениво прямо здесь), запрещаем self-deal, повторный take того же
// исполнителя бесплатен и идемпотентен, свободный слот проверяем под
// блокировкой, списание делает леджер под блокировкой строки исполнителя.
func (s *OrderService) Take(ctx context.Context, executorID int64, orderID string) (*TakeResult, error) {
	var result *TakeResult
	var expiredNow bool

	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		orderRepo, takeRepo, userRepo, reposErr := s.txRepos(tx)
		if reposErr != nil {
			return reposErr
		}

		order, lockErr := orderRepo.LockByID(c, orderID)
		if lockErr != nil {
			return convertRepoErr(lockErr)
		}
		if order.Status != domain.OrderStatusActive {
			return fmt.Errorf("order %s is %s: %w", orderID, order.Status, domain.ErrGone)
		}

		if order.IsExpired(s.now()) {
			// Ленивая фиксация просрочки: переход и счетчики коммитятся,
			// Gone вернем уже после коммита.
			if expireErr := expireLockedOrder(c, orderRepo, takeRepo, userRepo, order); expireErr != nil {
				return expireErr
			}
			expiredNow = true
			return nil
		}

		if order.ClientID == executorID {
			return fmt.Errorf("client cannot take own order: %w", domain.ErrForbidden)
		}

		takes, takesErr := takeRepo.GetByOrderID(c, orderID)
		if takesErr != nil {
			return takesErr
		}
		for _, take := range takes {
			if take.ExecutorID == executorID {
				// Повторный take: контакт уже оплачен, отдаем бесплатно.
				executor, getErr := userRepo.GetByID(c, executorID)
				if getErr != nil {
					return getErr
				}
				result = &TakeResult{Contact: order.Contact, TakeCount: len(takes), Balance: executor.Balance}
				return nil
			}
		}

		if len(takes) >= s.rules.MaxExecutorsPerOrder {
			return fmt.Errorf("order %s already has %d takes: %w", orderID, len(takes), domain.ErrConflict)
		}

		newBalance, debitErr := s.ledger.DebitTx(c, tx, DebitArgs{
			UserID:      executorID,
			Amount:      s.rules.OrderTakeCost,
			Type:        domain.TransactionOrderTake,
			OrderID:     orderID,
			Description: fmt.Sprintf("Contact access for order %s", orderID),
		})
		if debitErr != nil {
			return debitErr
		}

		if _, createErr := takeRepo.Create(c, orderID, executorID); createErr != nil {
			return convertRepoErr(createErr)
		}
		if counterErr := userRepo.AdjustCounters(c, executorID, repoargs.AdjustCounters{ActiveDelta: 1}); counterErr != nil {
			return counterErr
		}

		result = &TakeResult{Contact: order.Contact, TakeCount: len(takes) + 1, Balance: newBalance}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	if expiredNow {
		return nil, fmt.Errorf("order %s lifetime elapsed: %w", orderID, domain.ErrGone)
	}
	return result, nil
}

// Respond одноразовая отметка клиента "я ответил исполнителю". Снимает заказ
// с радара no-response автозакрытия. Без take отмечать нечего - domain.ErrConflict.
func (s *OrderService) Respond(ctx context.Context, clientID int64, orderID string) (*domain.Order, error) {
	var updated *domain.Order
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		orderRepo, takeRepo, _, reposErr := s.txRepos(tx)
		if reposErr != nil {
			return reposErr
		}

		order, takes, guardErr := s.lockOwnedActive(c, orderRepo, takeRepo, clientID, orderID)
		if guardErr != nil {
			return guardErr
		}
		if len(takes) == 0 {
			return fmt.Errorf("order %s has no takes: %w", orderID, domain.ErrConflict)
		}
		if order.CustomerRespondedAt != nil {
			return fmt.Errorf("order %s already marked responded: %w", orderID, domain.ErrConflict)
		}

		var setErr error
		updated, setErr = orderRepo.SetCustomerRespondedAt(c, orderID, s.now())
		return convertRepoErr(setErr)
	})
	if txErr != nil {
		return nil, txErr
	}
	return updated, nil
}

// Close закрытие заказа клиентом без завершения. Требует хотя бы один take,
// заказ без откликов удаляют через Delete. Взносы исполнителей не возвращаются:
// доступ к контакту уже предоставлен.
func (s *OrderService) Close(ctx context.Context, clientID int64, orderID string) error {
	return s.finalize(ctx, clientID, orderID, domain.OrderStatusClosedNoResponse)
}

// Complete клиент подтверждает выполнение заказа. Требует хотя бы один take.
// Счетчик выполненных растет и у клиента, и у каждого взявшего исполнителя.
func (s *OrderService) Complete(ctx context.Context, clientID int64, orderID string) error {
	return s.finalize(ctx, clientID, orderID, domain.OrderStatusCompleted)
}

func (s *OrderService) finalize(
	ctx context.Context,
	clientID int64,
	orderID string,
	status domain.OrderStatusType,
) error {
	return s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		orderRepo, takeRepo, userRepo, reposErr := s.txRepos(tx)
		if reposErr != nil {
			return reposErr
		}

		_, takes, guardErr := s.lockOwnedActive(c, orderRepo, takeRepo, clientID, orderID)
		if guardErr != nil {
			return guardErr
		}
		if len(takes) == 0 {
			return fmt.Errorf("order %s has no takes: %w", orderID, domain.ErrConflict)
		}

		if statusErr := orderRepo.SetStatus(c, orderID, status); statusErr != nil {
			return convertRepoErr(statusErr)
		}

		clientDeltas := repoargs.AdjustCounters{ActiveDelta: -1}
		executorDeltas := repoargs.AdjustCounters{ActiveDelta: -1}
		if status == domain.OrderStatusCompleted {
			clientDeltas.CompletedDelta = 1
			executorDeltas.CompletedDelta = 1
		}

		if counterErr := userRepo.AdjustCounters(c, clientID, clientDeltas); counterErr != nil {
			return counterErr
		}
		for _, take := range takes {
			if counterErr := userRepo.AdjustCounters(c, take.ExecutorID, executorDeltas); counterErr != nil {
				return counterErr
			}
		}
		return nil
	})
}

// lockOwnedEditable блокирует заказ и проверяет предусловия редактирования:
// владелец, активен, не просрочен, без take.
func (s *OrderService) lockOwnedEditable(
	ctx context.Context,
	orderRepo domain.OrderRepository,
	takeRepo domain.TakeRepository,
	clientID int64,
	orderID string,
) (*domain.Order, error) {
	order, guardErr := s.lockOwned(ctx, orderRepo, clientID, orderID)
	if guardErr != nil {
		return nil, guardErr
	}
	if order.Status != domain.OrderStatusActive || order.IsExpired(s.now()) {
		return nil, fmt.Errorf("order %s is no longer editable: %w", orderID, domain.ErrGone)
	}

	takes, takesErr := takeRepo.GetByOrderID(ctx, orderID)
	if takesErr != nil {
		return nil, takesErr //nolint:wrapcheck
	}
	if len(takes) > 0 {
		return nil, fmt.Errorf("order %s already taken: %w", orderID, domain.ErrForbidden)
	}
	return order, nil
}

// lockOwnedActive блокирует заказ, проверяет владение и активность,
// возвращает заказ вместе с текущими take.
func (s *OrderService) lockOwnedActive(
	ctx context.Context,
	orderRepo domain.OrderRepository,
	takeRepo domain.TakeRepository,
	clientID int64,
	orderID string,
) (*domain.Order, []domain.ExecutorTake, error) {
	order, guardErr := s.lockOwned(ctx, orderRepo, clientID, orderID)
	if guardErr != nil {
		return nil, nil, guardErr
	}
	if order.Status != domain.OrderStatusActive || order.IsExpired(s.now()) {
		return nil, nil, fmt.Errorf("order %s is not active: %w", orderID, domain.ErrGone)
	}

	takes, takesErr := takeRepo.GetByOrderID(ctx, orderID)
	if takesErr != nil {
		return nil, nil, takesErr //nolint:wrapcheck
	}
	return order, takes, nil
}

func (s *OrderService) lockOwned(
	ctx context.Context,
	orderRepo domain.OrderRepository,
	clientID int64,
	orderID string,
) (*domain.Order, error) {
	order, lockErr := orderRepo.LockByID(ctx, orderID)
	if lockErr != nil {
		return nil, convertRepoErr(lockErr)
	}
	if order.ClientID != clientID {
		// Чужой заказ неотличим от несуществующего.
		return nil, fmt.Errorf("order %s: %w", orderID, domain.ErrNotFound)
	}
	return order, nil
}

// expireLockedOrder переводит уже заблокированный активный заказ в expired
// и снимает его со счетчиков клиента и всех взявших исполнителей.
func expireLockedOrder(
	ctx context.Context,
	orderRepo domain.OrderRepository,
	takeRepo domain.TakeRepository,
	userRepo domain.UserRepository,
	order *domain.Order,
) error {
	if statusErr := orderRepo.SetStatus(ctx, order.ID, domain.OrderStatusExpired); statusErr != nil {
		return convertRepoErr(statusErr)
	}
	if counterErr := userRepo.AdjustCounters(ctx, order.ClientID, repoargs.AdjustCounters{ActiveDelta: -1}); counterErr != nil {
		return counterErr
	}

	takes, takesErr := takeRepo.GetByOrderID(ctx, order.ID)
	if takesErr != nil {
		return takesErr //nolint:wrapcheck
	}
	for _, take := range takes {
		if counterErr := userRepo.AdjustCounters(ctx, take.ExecutorID, repoargs.AdjustCounters{ActiveDelta: -1}); counterErr != nil {
			return counterErr
		}
	}
	return nil
}

func (s *OrderService) txRepos(
	tx uow.TX,
) (domain.OrderRepository, domain.TakeRepository, domain.UserRepository, error) {
	orderRepo, orderRepoErr := uow.GetAs[domain.OrderRepository](tx, uow.RepositoryName(repoargs.OrderRepoName))
	if orderRepoErr != nil {
		return nil, nil, nil, orderRepoErr //nolint:wrapcheck
	}
	takeRepo, takeRepoErr := uow.GetAs[domain.TakeRepository](tx, uow.RepositoryName(repoargs.TakeRepoName))
	if takeRepoErr != nil {
		return nil, nil, nil, takeRepoErr //nolint:wrapcheck
	}
	userRepo, userRepoErr := uow.GetAs[domain.UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
	if userRepoErr != nil {
		return nil, nil, nil, userRepoErr //nolint:wrapcheck
	}
	return orderRepo, takeRepo, userRepo, nil
}

// generateOrderID возвращает непредсказуемый короткий id для использования в URL.
func generateOrderID() (string, error) {
	buf := make([]byte, orderIDBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err //nolint:wrapcheck
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
