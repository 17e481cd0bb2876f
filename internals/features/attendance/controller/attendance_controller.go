package controller

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"absensichain_backend/internals/blockchain"
	"absensichain_backend/internals/features/attendance/dto"
	"absensichain_backend/internals/features/attendance/model"
	"absensichain_backend/internals/features/attendance/service"
	helper "absensichain_backend/internals/helpers"
)

/* =======================================================
   CONTROLLER
   ======================================================= */

// AttendanceService adalah potongan Coordinator yang dipakai controller;
// interface supaya handler bisa diuji dengan fake.
type AttendanceService interface {
	LogAttendance(ctx context.Context, claim service.AttendanceClaim) (*service.LogResult, error)
	Verify(ctx context.Context, studentID string, date int64) (*blockchain.VerifyResult, error)
	History(ctx context.Context) ([]model.AttendanceLogModel, error)
	HistoryByStudent(ctx context.Context, studentID string) ([]model.AttendanceLogModel, error)
}

type Reconciling interface {
	Reconcile(ctx context.Context, fromBlock uint64) (*service.ReconcileReport, error)
}

type AttendanceController struct {
	Service    AttendanceService
	Reconciler Reconciling
	Validate   *validator.Validate
}

func NewAttendanceController(svc AttendanceService, rec Reconciling) *AttendanceController {
	return &AttendanceController{Service: svc, Reconciler: rec, Validate: validator.New()}
}

/* =======================================================
   HANDLERS
   ======================================================= */

// GET /verify?student_id=&date=
func (ctrl *AttendanceController) Verify(c *fiber.Ctx) error {
	studentID := strings.TrimSpace(c.Query("student_id"))
	dateStr := strings.TrimSpace(c.Query("date"))
	if studentID == "" || dateStr == "" {
		return helper.Error(c, fiber.StatusBadRequest, "student_id and date required")
	}
	date, err := strconv.ParseInt(dateStr, 10, 64)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "date harus integer (epoch day)")
	}

	res, err := ctrl.Service.Verify(c.UserContext(), studentID, date)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(dto.VerifyResponse{
		Present:    res.Present,
		ReasonHash: res.ReasonHash.Hex(),
		Name:       res.DisplayName,
	})
}

// POST /log
func (ctrl *AttendanceController) Log(c *fiber.Ctx) error {
	var req dto.LogAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	claim := service.AttendanceClaim{
		StudentID:   strings.TrimSpace(req.StudentID),
		DisplayName: strings.TrimSpace(req.Name),
		Date:        *req.Date,
		IsPresent:   *req.IsPresent,
		Reason:      strings.TrimSpace(req.Reason),
	}

	res, err := ctrl.Service.LogAttendance(c.UserContext(), claim)
	if err != nil {
		return mapLogError(c, err)
	}

	return c.JSON(dto.LogSuccessResponse{
		Tx:     res.TxHash,
		Block:  res.BlockNumber,
		Status: "attendance_logged",
	})
}

// GET /history
func (ctrl *AttendanceController) History(c *fiber.Ctx) error {
	rows, err := ctrl.Service.History(c.UserContext())
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(dto.FromAttendanceLogModels(rows))
}

// GET /history/:student_id
func (ctrl *AttendanceController) HistoryByStudent(c *fiber.Ctx) error {
	studentID := c.Params("student_id")
	rows, err := ctrl.Service.HistoryByStudent(c.UserContext(), studentID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(dto.FromAttendanceLogModels(rows))
}

// GET /reconcile?from_block=
func (ctrl *AttendanceController) Reconcile(c *fiber.Ctx) error {
	fromBlock, err := strconv.ParseUint(c.Query("from_block", "0"), 10, 64)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "from_block harus integer")
	}
	report, err := ctrl.Reconciler.Reconcile(c.UserContext(), fromBlock)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(report)
}

/* =======================================================
   ERROR MAPPING (taxonomy §7 → HTTP)
   ======================================================= */

func mapLogError(c *fiber.Ctx, err error) error {
	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		return helper.Error(c, fiber.StatusBadRequest, vErr.Msg)
	}

	var idErr *service.IdentityConflictError
	if errors.As(err, &idErr) {
		return helper.ErrorWithDetails(c, fiber.StatusConflict,
			"Student ID already registered under another name",
			fiber.Map{
				"registered_name": idErr.Registered,
				"attempted_name":  idErr.Attempted,
			})
	}

	var pErr *service.PersistenceError
	if errors.As(err, &pErr) {
		// chain sudah commit — beri referensi tx untuk rekonsiliasi manual
		return helper.ErrorWithDetails(c, fiber.StatusInternalServerError,
			"Catatan terkonfirmasi on-chain tapi gagal disimpan off-chain",
			fiber.Map{"tx": pErr.TxHash.Hex()})
	}

	var cErr *blockchain.ChainError
	if errors.As(err, &cErr) {
		return helper.Error(c, fiber.StatusInternalServerError, cErr.Error())
	}

	return helper.Error(c, fiber.StatusInternalServerError, err.Error())
}
