package blockchain

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// TxResult adalah bukti konfirmasi: hash transaksi + blok tempat ia masuk.
type TxResult struct {
	TxHash      common.Hash
	BlockNumber uint64
}

// Writer mengirim transaksi logAttendance dan menunggu receipt secara sinkron.
//
// Nonce dan gas price diambil segar setiap submit (nilai basi bikin transaksi
// ditolak/nyangkut). Karena nonce per sender harus berurutan tanpa celah,
// seluruh rangkaian ambil-nonce → broadcast dipegang satu mutex: satu jalur
// submit per sender. Menunggu receipt terjadi di luar mutex supaya submit
// berikutnya tidak ikut terblokir selama konfirmasi.
type Writer struct {
	client         *Client
	signer         Signer
	gasLimit       uint64
	confirmTimeout time.Duration

	submitMu sync.Mutex
}

func NewWriter(client *Client, signer Signer, gasLimit uint64, confirmTimeout time.Duration) *Writer {
	return &Writer{
		client:         client,
		signer:         signer,
		gasLimit:       gasLimit,
		confirmTimeout: confirmTimeout,
	}
}

// SubmitAttendance membangun, menandatangani, mengirim, lalu menunggu konfirmasi
// transaksi logAttendance. Error apa pun berarti TIDAK ADA yang boleh dianggap
// tercatat — kecuali TxHash terisi di ChainError, yang berarti transaksi sudah
// ter-broadcast dan tinggal menunggu (urusan rekonsiliasi, bukan retry).
func (w *Writer) SubmitAttendance(ctx context.Context, idHash common.Hash, date int64, isPresent bool, reasonHash common.Hash, displayName string) (*TxResult, error) {
	data, err := w.client.abi.Pack("logAttendance", idHash, big.NewInt(date), isPresent, reasonHash, displayName)
	if err != nil {
		return nil, &ChainError{Op: "pack", Err: err}
	}

	signedTx, err := w.signAndBroadcast(ctx, data)
	if err != nil {
		return nil, err
	}

	// Setelah broadcast, cancel dari caller hanya menghentikan penantian kita;
	// transaksinya sendiri sudah di mempool dan tetap bisa masuk blok.
	waitCtx, cancel := context.WithTimeout(ctx, w.confirmTimeout)
	defer cancel()

	receipt, err := bind.WaitMined(waitCtx, w.client.eth, signedTx)
	if err != nil {
		return nil, &ChainError{Op: "confirm", TxHash: signedTx.Hash(), Err: err}
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, &ChainError{Op: "execute", TxHash: signedTx.Hash(), Err: errReverted}
	}

	return &TxResult{
		TxHash:      signedTx.Hash(),
		BlockNumber: receipt.BlockNumber.Uint64(),
	}, nil
}

// signAndBroadcast memegang jalur submit: nonce + gas price segar, sign, kirim.
func (w *Writer) signAndBroadcast(ctx context.Context, data []byte) (*types.Transaction, error) {
	w.submitMu.Lock()
	defer w.submitMu.Unlock()

	sender := w.signer.Address()

	nonce, err := w.client.eth.PendingNonceAt(ctx, sender)
	if err != nil {
		return nil, &ChainError{Op: "nonce", Err: err}
	}
	gasPrice, err := w.client.eth.SuggestGasPrice(ctx)
	if err != nil {
		return nil, &ChainError{Op: "gas_price", Err: err}
	}

	contract := w.client.contract
	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &contract,
		Value:    big.NewInt(0),
		Gas:      w.gasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})

	signedTx, err := w.signer.SignTx(tx, w.client.chainID)
	if err != nil {
		return nil, &ChainError{Op: "sign", Err: err}
	}
	if err := w.client.eth.SendTransaction(ctx, signedTx); err != nil {
		return nil, &ChainError{Op: "send", Err: err}
	}
	return signedTx, nil
}
