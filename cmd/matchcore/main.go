package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/mkarimzade/matchcore/internal/config"
	"github.com/mkarimzade/matchcore/internal/domain"
	"github.com/mkarimzade/matchcore/internal/engine"
	"github.com/mkarimzade/matchcore/internal/event"
	"github.com/mkarimzade/matchcore/internal/service"
	"github.com/mkarimzade/matchcore/internal/store"
)

// inputLine is one request on stdin. The type field selects which of the
// remaining fields apply.
type inputLine struct {
	Type string `json:"type"`

	// security
	ISIN     string `json:"isin"`
	TickSize int64  `json:"tick_size"`
	LotSize  int64  `json:"lot_size"`

	// broker / shareholder
	BrokerID      int64            `json:"broker_id"`
	Credit        int64            `json:"credit"`
	ShareholderID int64            `json:"shareholder_id"`
	Positions     map[string]int64 `json:"positions"`

	// orders
	RequestID                int64       `json:"request_id"`
	OrderID                  int64       `json:"order_id"`
	Side                     domain.Side `json:"side"`
	Quantity                 int64       `json:"quantity"`
	Price                    int64       `json:"price"`
	PeakSize                 int64       `json:"peak_size"`
	MinimumExecutionQuantity int64       `json:"minimum_execution_quantity"`
	StopPrice                int64       `json:"stop_price"`

	// change_state
	TargetState domain.MatchingState `json:"target_state"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var logLevel slog.Level
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	securities := store.NewSecurityStore()
	brokers := store.NewBrokerStore()
	shareholders := store.NewShareholderStore()

	matcher := engine.NewMatcher()
	publisher := event.NewStreamPublisher(os.Stdout, logger)
	orders := service.NewOrderService(securities, brokers, shareholders, matcher, publisher)

	if cfg.BootstrapFile != "" {
		file, err := os.Open(cfg.BootstrapFile)
		if err != nil {
			logger.Error("failed to open bootstrap file", slog.String("path", cfg.BootstrapFile), slog.String("error", err.Error()))
			os.Exit(1)
		}
		err = process(file, logger, securities, brokers, shareholders, orders)
		file.Close()
		if err != nil {
			logger.Error("bootstrap input error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	if err := process(os.Stdin, logger, securities, brokers, shareholders, orders); err != nil {
		logger.Error("input error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// process reads JSON lines from r and dispatches each request. Malformed or
// failing lines are logged and skipped so one bad request cannot stall the
// stream.
func process(
	r io.Reader,
	logger *slog.Logger,
	securities *store.SecurityStore,
	brokers *store.BrokerStore,
	shareholders *store.ShareholderStore,
	orders *service.OrderService,
) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var line inputLine
		if err := json.Unmarshal(raw, &line); err != nil {
			logger.Error("skipping malformed line", slog.Int("line", lineNo), slog.String("error", err.Error()))
			continue
		}

		if err := dispatch(&line, securities, brokers, shareholders, orders); err != nil {
			logger.Error("request failed", slog.Int("line", lineNo), slog.String("type", line.Type), slog.String("error", err.Error()))
		}
	}
	return scanner.Err()
}

func dispatch(
	line *inputLine,
	securities *store.SecurityStore,
	brokers *store.BrokerStore,
	shareholders *store.ShareholderStore,
	orders *service.OrderService,
) error {
	switch line.Type {
	case "security":
		return securities.Create(engine.NewSecurity(line.ISIN, line.TickSize, line.LotSize))
	case "broker":
		return brokers.Create(&domain.Broker{BrokerID: line.BrokerID, Credit: line.Credit})
	case "shareholder":
		sh := domain.NewShareholder(line.ShareholderID)
		for isin, quantity := range line.Positions {
			sh.IncPosition(isin, quantity)
		}
		return shareholders.Create(sh)
	case "new_order":
		orders.NewOrder(orderRequest(line))
		return nil
	case "update_order":
		orders.UpdateOrder(orderRequest(line))
		return nil
	case "delete_order":
		orders.DeleteOrder(&domain.DeleteOrderRequest{
			RequestID: line.RequestID,
			OrderID:   line.OrderID,
			ISIN:      line.ISIN,
			Side:      line.Side,
		})
		return nil
	case "change_state":
		orders.ChangeMatchingState(&domain.ChangeMatchingStateRequest{
			ISIN:        line.ISIN,
			TargetState: line.TargetState,
		})
		return nil
	default:
		return fmt.Errorf("unknown request type %q", line.Type)
	}
}

func orderRequest(line *inputLine) *domain.OrderRequest {
	return &domain.OrderRequest{
		RequestID:                line.RequestID,
		OrderID:                  line.OrderID,
		ISIN:                     line.ISIN,
		BrokerID:                 line.BrokerID,
		ShareholderID:            line.ShareholderID,
		Side:                     line.Side,
		Quantity:                 line.Quantity,
		Price:                    line.Price,
		PeakSize:                 line.PeakSize,
		MinimumExecutionQuantity: line.MinimumExecutionQuantity,
		StopPrice:                line.StopPrice,
		EntryTime:                time.Now(),
	}
}
