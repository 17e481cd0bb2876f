package blockchain

import (
	"context"
	"fmt"
	"log"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"absensichain_backend/internals/configs"
)

// Client membungkus koneksi RPC + kontrak AttendanceLogger.
// Aman dipakai paralel untuk pembacaan; jalur tulis diserialisasi oleh Writer.
type Client struct {
	eth      *ethclient.Client
	contract common.Address
	abi      abi.ABI
	chainID  *big.Int
}

// Dial membuka koneksi RPC, memastikan node hidup, dan mem-parse ABI kontrak.
func Dial(ctx context.Context, cfg *configs.Config) (*Client, error) {
	eth, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("dial RPC %s: %w", cfg.RPCURL, err)
	}

	chainID, err := eth.ChainID(ctx)
	if err != nil {
		eth.Close()
		return nil, fmt.Errorf("RPC tidak connect: %w", err)
	}

	parsed, err := LoadABI(cfg.ABIFile)
	if err != nil {
		eth.Close()
		return nil, err
	}

	log.Printf("✅ RPC connected (chain id %s).", chainID)
	return &Client{
		eth:      eth,
		contract: common.HexToAddress(cfg.ContractAddress),
		abi:      parsed,
		chainID:  chainID,
	}, nil
}

func (c *Client) Close() { c.eth.Close() }

func (c *Client) ChainID() *big.Int { return c.chainID }

func (c *Client) ContractAddress() common.Address { return c.contract }
