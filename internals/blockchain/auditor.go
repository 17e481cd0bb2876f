package blockchain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
)

// ListLoggedTxHashes mengambil tx hash semua event AttendanceLogged sejak
// fromBlock — sumber kebenaran sisi chain untuk rekonsiliasi.
func (c *Client) ListLoggedTxHashes(ctx context.Context, fromBlock uint64) ([]common.Hash, error) {
	topic := c.abi.Events["AttendanceLogged"].ID

	logs, err := c.eth.FilterLogs(ctx, ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(fromBlock),
		Addresses: []common.Address{c.contract},
		Topics:    [][]common.Hash{{topic}},
	})
	if err != nil {
		return nil, &ReadError{Op: "filter_logs", Err: err}
	}

	// Satu transaksi satu event di kontrak ini, tapi dedupe tetap murah.
	seen := make(map[common.Hash]struct{}, len(logs))
	hashes := make([]common.Hash, 0, len(logs))
	for _, lg := range logs {
		if lg.Removed {
			continue
		}
		if _, dup := seen[lg.TxHash]; dup {
			continue
		}
		seen[lg.TxHash] = struct{}{}
		hashes = append(hashes, lg.TxHash)
	}
	return hashes, nil
}
