package ethereum_test

import (
	"context"
	"errors"
	"math/big"
	"os"
	"testing"
	"time"

	goethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/checkmint/checkmint/internal/domain"
	"github.com/checkmint/checkmint/internal/logger"
	"github.com/checkmint/checkmint/internal/mocks"
	"github.com/checkmint/checkmint/internal/providers/ethereum"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

const (
	testSignerKey = "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"
	testContract  = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
	testRecipient = "0x1234567890123456789012345678901234567890"
)

func newTestLedger(t *testing.T, client *mocks.MockEthClient, clock *mocks.MockClock) *ethereum.EVMLedger {
	ledger, err := ethereum.NewEVMLedger(client, clock, ethereum.Config{
		ContractAddress: testContract,
		SignerKey:       testSignerKey,
		ChainID:         84532,
		Confirmations:   1,
		FinalityTimeout: time.Minute,
		GasLimit:        500000,
	})
	require.NoError(t, err)
	return ledger
}

func stubClock(clock *mocks.MockClock) {
	now := time.Now()
	closed := make(chan time.Time, 1)
	closed <- now
	clock.EXPECT().Now().Return(now).AnyTimes()
	clock.EXPECT().After(gomock.Any()).Return(closed).AnyTimes()
}

func TestNewEVMLedgerRejectsBadInputs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	_, err := ethereum.NewEVMLedger(mocks.NewMockEthClient(ctrl), mocks.NewMockClock(ctrl), ethereum.Config{
		ContractAddress: "not-an-address",
		SignerKey:       testSignerKey,
	})
	var vErr *domain.ValidationError
	assert.ErrorAs(t, err, &vErr)

	_, err = ethereum.NewEVMLedger(mocks.NewMockEthClient(ctrl), mocks.NewMockClock(ctrl), ethereum.Config{
		ContractAddress: testContract,
		SignerKey:       "zz",
	})
	assert.Error(t, err)
}

func TestIsValidAddress(t *testing.T) {
	assert.True(t, ethereum.IsValidAddress(testRecipient))
	assert.False(t, ethereum.IsValidAddress("0x123"))
	assert.False(t, ethereum.IsValidAddress("bob@example.com"))
}

func TestSubmitMintRejectsInvalidRecipient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := newTestLedger(t, mocks.NewMockEthClient(ctrl), mocks.NewMockClock(ctrl))

	_, err := ledger.SubmitMint(context.Background(), "evt-1", "not-an-address", "ipfs://meta")
	var vErr *domain.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestSubmitMintSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockEthClient(ctrl)
	clock := mocks.NewMockClock(ctrl)
	stubClock(clock)
	ledger := newTestLedger(t, client, clock)

	ctx := context.Background()

	client.EXPECT().PendingNonceAt(ctx, gomock.Any()).Return(uint64(7), nil)
	client.EXPECT().SuggestGasPrice(ctx).Return(big.NewInt(1_000_000_000), nil)
	client.EXPECT().EstimateGas(ctx, gomock.Any()).Return(uint64(120000), nil)

	var sentTx *types.Transaction
	client.EXPECT().SendTransaction(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *types.Transaction) error {
			sentTx = tx
			return nil
		})

	eventTopic := crypto.Keccak256Hash([]byte("AttendanceMinted(uint256,string,address)"))
	client.EXPECT().TransactionReceipt(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, txHash common.Hash) (*types.Receipt, error) {
			return &types.Receipt{
				Status:      types.ReceiptStatusSuccessful,
				BlockNumber: big.NewInt(100),
				Logs: []*types.Log{{
					Address: common.HexToAddress(testContract),
					Topics: []common.Hash{
						eventTopic,
						common.BigToHash(big.NewInt(42)), // tokenId
						common.BytesToHash(common.HexToAddress(testRecipient).Bytes()),
					},
					TxHash:      txHash,
					BlockNumber: 100,
				}},
			}, nil
		})
	client.EXPECT().BlockNumber(ctx).Return(uint64(101), nil)

	receipt, err := ledger.SubmitMint(ctx, "evt-1", testRecipient, "ipfs://meta")
	require.NoError(t, err)

	require.NotNil(t, sentTx)
	assert.Equal(t, uint64(7), sentTx.Nonce())
	assert.Equal(t, sentTx.Hash().Hex(), receipt.TxHash)
	assert.Equal(t, uint64(100), receipt.BlockNumber)
	assert.Equal(t, uint64(42), receipt.TokenID)
}

func TestSubmitMintRevertedIsTerminal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockEthClient(ctrl)
	clock := mocks.NewMockClock(ctrl)
	stubClock(clock)
	ledger := newTestLedger(t, client, clock)

	ctx := context.Background()

	client.EXPECT().PendingNonceAt(ctx, gomock.Any()).Return(uint64(7), nil)
	client.EXPECT().SuggestGasPrice(ctx).Return(big.NewInt(1_000_000_000), nil)
	client.EXPECT().EstimateGas(ctx, gomock.Any()).Return(uint64(120000), nil)
	client.EXPECT().SendTransaction(ctx, gomock.Any()).Return(nil)
	client.EXPECT().TransactionReceipt(ctx, gomock.Any()).
		Return(&types.Receipt{
			Status:      types.ReceiptStatusFailed,
			BlockNumber: big.NewInt(100),
		}, nil)
	client.EXPECT().BlockNumber(ctx).Return(uint64(101), nil)

	_, err := ledger.SubmitMint(ctx, "evt-1", testRecipient, "ipfs://meta")
	var cErr *domain.ChainError
	require.ErrorAs(t, err, &cErr)
	assert.False(t, cErr.Retryable)
	assert.False(t, domain.IsRetryable(err))
}

func TestSubmitMintSendFailureClassified(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockEthClient(ctrl)
	clock := mocks.NewMockClock(ctrl)
	stubClock(clock)
	ledger := newTestLedger(t, client, clock)

	ctx := context.Background()

	client.EXPECT().PendingNonceAt(ctx, gomock.Any()).Return(uint64(7), nil)
	client.EXPECT().SuggestGasPrice(ctx).Return(big.NewInt(1_000_000_000), nil)
	client.EXPECT().EstimateGas(ctx, gomock.Any()).Return(uint64(120000), nil)
	client.EXPECT().SendTransaction(ctx, gomock.Any()).Return(errors.New("nonce too low"))

	_, err := ledger.SubmitMint(ctx, "evt-1", testRecipient, "ipfs://meta")
	require.Error(t, err)
	assert.True(t, domain.IsRetryable(err))
}

func TestEstimateMintGas(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockEthClient(ctrl)
	ledger := newTestLedger(t, client, mocks.NewMockClock(ctrl))

	ctx := context.Background()
	client.EXPECT().EstimateGas(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, msg goethereum.CallMsg) (uint64, error) {
			assert.Equal(t, common.HexToAddress(testContract), *msg.To)
			return 90000, nil
		})

	gas, err := ledger.EstimateMintGas(ctx, "evt-1", testRecipient, "ipfs://meta")
	require.NoError(t, err)
	assert.Equal(t, uint64(90000), gas)
}

func TestSignerBalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockEthClient(ctrl)
	ledger := newTestLedger(t, client, mocks.NewMockClock(ctrl))

	ctx := context.Background()
	client.EXPECT().BalanceAt(ctx, gomock.Any(), nil).Return(big.NewInt(1_000_000), nil)

	balance, err := ledger.SignerBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1_000_000), balance.Int64())
}
