package blockchain

import (
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// ABI bawaan kontrak AttendanceLogger. Dipakai kalau ABI_FILE tidak diset,
// supaya deploy sederhana tidak wajib membawa file build.
const attendanceLoggerABI = `[
  {
    "inputs": [
      {"internalType": "bytes32", "name": "idHash", "type": "bytes32"},
      {"internalType": "uint256", "name": "date", "type": "uint256"},
      {"internalType": "bool", "name": "isPresent", "type": "bool"},
      {"internalType": "bytes32", "name": "reasonHash", "type": "bytes32"},
      {"internalType": "string", "name": "name", "type": "string"}
    ],
    "name": "logAttendance",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      {"internalType": "bytes32", "name": "idHash", "type": "bytes32"},
      {"internalType": "uint256", "name": "date", "type": "uint256"}
    ],
    "name": "verifyAttendance",
    "outputs": [
      {"internalType": "bool", "name": "", "type": "bool"},
      {"internalType": "bytes32", "name": "", "type": "bytes32"},
      {"internalType": "string", "name": "", "type": "string"}
    ],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "bytes32", "name": "idHash", "type": "bytes32"},
      {"indexed": false, "internalType": "uint256", "name": "date", "type": "uint256"},
      {"indexed": false, "internalType": "bool", "name": "isPresent", "type": "bool"}
    ],
    "name": "AttendanceLogged",
    "type": "event"
  }
]`

// LoadABI membaca ABI dari file (kalau path diisi), selain itu pakai ABI bawaan.
func LoadABI(path string) (abi.ABI, error) {
	raw := attendanceLoggerABI
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return abi.ABI{}, fmt.Errorf("baca ABI file %s: %w", path, err)
		}
		raw = string(b)
	}
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("parse ABI: %w", err)
	}
	return parsed, nil
}
