package ethereum

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"time"

	goethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/checkmint/checkmint/internal/adapter"
	"github.com/checkmint/checkmint/internal/domain"
	"github.com/checkmint/checkmint/internal/logger"
)

// contractABI covers the attendance minting surface of the contract
const contractABI = `[
	{
		"name": "mintAttendance",
		"type": "function",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "eventId", "type": "string"},
			{"name": "recipient", "type": "address"},
			{"name": "metadata", "type": "string"}
		],
		"outputs": [{"name": "tokenId", "type": "uint256"}]
	},
	{
		"name": "AttendanceMinted",
		"type": "event",
		"anonymous": false,
		"inputs": [
			{"name": "tokenId", "type": "uint256", "indexed": true},
			{"name": "eventId", "type": "string", "indexed": false},
			{"name": "recipient", "type": "address", "indexed": true}
		]
	}
]`

// receiptPollInterval is how often the finality wait polls for a receipt
const receiptPollInterval = 2 * time.Second

// MintEvent is a decoded AttendanceMinted log
type MintEvent struct {
	TokenID     uint64
	EventID     string
	Recipient   string
	TxHash      string
	BlockNumber uint64
}

// Config holds ledger configuration
type Config struct {
	ContractAddress string
	SignerKey       string
	ChainID         int64
	Confirmations   uint64
	FinalityTimeout time.Duration
	GasLimit        uint64
}

// Ledger defines the interface for on-chain mint operations to enable mocking
//
//go:generate mockgen -source=ledger.go -destination=../../mocks/ledger.go -package=mocks -mock_names=Ledger=MockLedger
type Ledger interface {
	// EstimateMintGas estimates the gas a mint would consume
	EstimateMintGas(ctx context.Context, eventID, recipient, metadata string) (uint64, error)

	// SubmitMint signs and broadcasts a mint transaction, then waits for
	// it to reach finality. The returned receipt carries the token ID
	// decoded from the AttendanceMinted log.
	SubmitMint(ctx context.Context, eventID, recipient, metadata string) (*domain.MintReceipt, error)

	// SignerBalance returns the wei balance of the minting account
	SignerBalance(ctx context.Context) (*big.Int, error)

	// SubscribeMintEvents streams decoded AttendanceMinted logs into ch
	SubscribeMintEvents(ctx context.Context, ch chan<- MintEvent) (goethereum.Subscription, error)

	// Close releases the underlying client connection
	Close()
}

// EVMLedger implements Ledger against an EVM chain
type EVMLedger struct {
	client          adapter.EthClient
	clock           adapter.Clock
	parsedABI       abi.ABI
	contract        common.Address
	signerKey       *ecdsa.PrivateKey
	signerAddr      common.Address
	chainID         *big.Int
	confirmations   uint64
	finalityTimeout time.Duration
	gasLimit        uint64
}

// NewEVMLedger creates a ledger bound to one contract and signing key
func NewEVMLedger(client adapter.EthClient, clock adapter.Clock, cfg Config) (*EVMLedger, error) {
	if !common.IsHexAddress(cfg.ContractAddress) {
		return nil, domain.NewValidationError("contract_address", "not a hex address")
	}

	parsedABI, err := abi.JSON(strings.NewReader(contractABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse contract ABI: %w", err)
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.SignerKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse signer key: %w", err)
	}

	confirmations := cfg.Confirmations
	if confirmations == 0 {
		confirmations = 1
	}
	finalityTimeout := cfg.FinalityTimeout
	if finalityTimeout == 0 {
		finalityTimeout = 2 * time.Minute
	}

	return &EVMLedger{
		client:          client,
		clock:           clock,
		parsedABI:       parsedABI,
		contract:        common.HexToAddress(cfg.ContractAddress),
		signerKey:       key,
		signerAddr:      crypto.PubkeyToAddress(key.PublicKey),
		chainID:         big.NewInt(cfg.ChainID),
		confirmations:   confirmations,
		finalityTimeout: finalityTimeout,
		gasLimit:        cfg.GasLimit,
	}, nil
}

// IsValidAddress reports whether s is a well-formed hex address
func IsValidAddress(s string) bool {
	return common.IsHexAddress(s)
}

// SignerAddress returns the minting account address
func (l *EVMLedger) SignerAddress() string {
	return l.signerAddr.Hex()
}

func (l *EVMLedger) packMint(eventID, recipient, metadata string) ([]byte, error) {
	if !common.IsHexAddress(recipient) {
		return nil, domain.NewValidationError("recipient", "not a hex address")
	}
	data, err := l.parsedABI.Pack("mintAttendance", eventID, common.HexToAddress(recipient), metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to pack mint call: %w", err)
	}
	return data, nil
}

// EstimateMintGas estimates the gas a mint would consume
func (l *EVMLedger) EstimateMintGas(ctx context.Context, eventID, recipient, metadata string) (uint64, error) {
	data, err := l.packMint(eventID, recipient, metadata)
	if err != nil {
		return 0, err
	}

	gas, err := l.client.EstimateGas(ctx, goethereum.CallMsg{
		From: l.signerAddr,
		To:   &l.contract,
		Data: data,
	})
	if err != nil {
		return 0, domain.NewChainError("estimate_gas", err, domain.IsRetryable(err))
	}
	return gas, nil
}

// SubmitMint signs and broadcasts a mint transaction, then waits for finality
func (l *EVMLedger) SubmitMint(ctx context.Context, eventID, recipient, metadata string) (*domain.MintReceipt, error) {
	data, err := l.packMint(eventID, recipient, metadata)
	if err != nil {
		return nil, err
	}

	nonce, err := l.client.PendingNonceAt(ctx, l.signerAddr)
	if err != nil {
		return nil, domain.NewChainError("pending_nonce", err, true)
	}

	gasPrice, err := l.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, domain.NewChainError("suggest_gas_price", err, true)
	}

	gas, err := l.client.EstimateGas(ctx, goethereum.CallMsg{
		From: l.signerAddr,
		To:   &l.contract,
		Data: data,
	})
	if err != nil {
		// Reverts surface during estimation and are terminal; anything
		// else falls back to the configured limit
		if !domain.IsRetryable(err) && strings.Contains(strings.ToLower(err.Error()), "revert") {
			return nil, domain.NewChainError("estimate_gas", err, false)
		}
		logger.WarnCtx(ctx, "gas estimation failed, using configured limit",
			zap.Error(err), zap.Uint64("gas_limit", l.gasLimit))
		gas = l.gasLimit
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &l.contract,
		Value:    big.NewInt(0),
		Gas:      gas,
		GasPrice: gasPrice,
		Data:     data,
	})

	signedTx, err := types.SignTx(tx, types.LatestSignerForChainID(l.chainID), l.signerKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := l.client.SendTransaction(ctx, signedTx); err != nil {
		return nil, domain.NewChainError("send_transaction", err, domain.IsRetryable(err))
	}

	txHash := signedTx.Hash()
	logger.InfoCtx(ctx, "mint transaction submitted",
		zap.String("tx_hash", txHash.Hex()),
		zap.String("event_id", eventID),
		zap.String("recipient", recipient))

	receipt, err := l.waitFinality(ctx, txHash)
	if err != nil {
		return nil, err
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, domain.NewChainError("mint",
			fmt.Errorf("transaction %s reverted on chain", txHash.Hex()), false)
	}

	result := &domain.MintReceipt{
		TxHash:      txHash.Hex(),
		BlockNumber: receipt.BlockNumber.Uint64(),
	}
	if event, ok := l.decodeMintLog(receipt.Logs); ok {
		result.TokenID = event.TokenID
	}
	return result, nil
}

// waitFinality polls for the transaction receipt and the configured number
// of confirmations, bounded by the finality timeout
func (l *EVMLedger) waitFinality(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	deadline := l.clock.Now().Add(l.finalityTimeout)

	var receipt *types.Receipt
	for {
		if l.clock.Now().After(deadline) {
			return nil, domain.NewChainError("wait_finality",
				fmt.Errorf("transaction %s not finalized within %s", txHash.Hex(), l.finalityTimeout), true)
		}

		var err error
		receipt, err = l.client.TransactionReceipt(ctx, txHash)
		if err == nil && receipt != nil {
			head, headErr := l.client.BlockNumber(ctx)
			if headErr == nil && head >= receipt.BlockNumber.Uint64()+l.confirmations-1 {
				return receipt, nil
			}
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-l.clock.After(receiptPollInterval):
		}
	}
}

// decodeMintLog decodes the first AttendanceMinted log emitted by the contract
func (l *EVMLedger) decodeMintLog(logs []*types.Log) (*MintEvent, bool) {
	eventABI := l.parsedABI.Events["AttendanceMinted"]
	for _, lg := range logs {
		if lg.Address != l.contract || len(lg.Topics) < 3 || lg.Topics[0] != eventABI.ID {
			continue
		}

		event := &MintEvent{
			TokenID:     new(big.Int).SetBytes(lg.Topics[1].Bytes()).Uint64(),
			Recipient:   common.BytesToAddress(lg.Topics[2].Bytes()).Hex(),
			TxHash:      lg.TxHash.Hex(),
			BlockNumber: lg.BlockNumber,
		}

		decoded, err := eventABI.Inputs.NonIndexed().Unpack(lg.Data)
		if err == nil && len(decoded) > 0 {
			if eventID, ok := decoded[0].(string); ok {
				event.EventID = eventID
			}
		}
		return event, true
	}
	return nil, false
}

// SignerBalance returns the wei balance of the minting account
func (l *EVMLedger) SignerBalance(ctx context.Context) (*big.Int, error) {
	balance, err := l.client.BalanceAt(ctx, l.signerAddr, nil)
	if err != nil {
		return nil, domain.NewChainError("balance_at", err, true)
	}
	return balance, nil
}

// SubscribeMintEvents streams decoded AttendanceMinted logs into ch. The
// goroutine stops when the subscription errors or ctx is canceled.
func (l *EVMLedger) SubscribeMintEvents(ctx context.Context, ch chan<- MintEvent) (goethereum.Subscription, error) {
	eventABI := l.parsedABI.Events["AttendanceMinted"]
	query := goethereum.FilterQuery{
		Addresses: []common.Address{l.contract},
		Topics:    [][]common.Hash{{eventABI.ID}},
	}

	logs := make(chan types.Log, 64)
	sub, err := l.client.SubscribeFilterLogs(ctx, query, logs)
	if err != nil {
		return nil, domain.NewChainError("subscribe_logs", err, true)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				sub.Unsubscribe()
				return
			case err := <-sub.Err():
				if err != nil {
					logger.Error(err, zap.String("message", "mint event subscription failed"))
				}
				return
			case lg := <-logs:
				if event, ok := l.decodeMintLog([]*types.Log{&lg}); ok {
					select {
					case ch <- *event:
					case <-ctx.Done():
						sub.Unsubscribe()
						return
					}
				}
			}
		}
	}()

	return sub, nil
}

// Close releases the underlying client connection
func (l *EVMLedger) Close() {
	l.client.Close()
}
