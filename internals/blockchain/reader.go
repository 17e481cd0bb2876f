package blockchain

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
)

var errReverted = errors.New("execution reverted")

// VerifyResult adalah potret state kontrak untuk satu (murid, tanggal).
type VerifyResult struct {
	Present     bool
	ReasonHash  common.Hash
	DisplayName string
}

// VerifyAttendance memanggil view function verifyAttendance lewat eth_call.
// Murni baca: tidak ada nonce, tidak ada gas, boleh jalan paralel, dan tetap
// bisa dipakai meski database off-chain mati — itulah gunanya jalur ini.
func (c *Client) VerifyAttendance(ctx context.Context, idHash common.Hash, date int64) (*VerifyResult, error) {
	data, err := c.abi.Pack("verifyAttendance", idHash, big.NewInt(date))
	if err != nil {
		return nil, &ReadError{Op: "pack", Err: err}
	}

	out, err := c.eth.CallContract(ctx, ethereum.CallMsg{To: &c.contract, Data: data}, nil)
	if err != nil {
		return nil, &ReadError{Op: "call", Err: err}
	}

	vals, err := c.abi.Unpack("verifyAttendance", out)
	if err != nil || len(vals) != 3 {
		return nil, &ReadError{Op: "unpack", Err: err}
	}

	present, ok1 := vals[0].(bool)
	reason, ok2 := vals[1].([32]byte)
	name, ok3 := vals[2].(string)
	if !ok1 || !ok2 || !ok3 {
		return nil, &ReadError{Op: "decode", Err: errors.New("bentuk return verifyAttendance tidak dikenal")}
	}

	return &VerifyResult{
		Present:     present,
		ReasonHash:  common.Hash(reason),
		DisplayName: name,
	}, nil
}
