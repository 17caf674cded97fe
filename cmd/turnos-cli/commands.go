package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/availability"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/integrations/turnosapi"
	"github.com/m04kA/SMC-BarberBooking/internal/store"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

const usage = `Uso: turnos-cli [-url URL] [-token TOKEN] [-timeout 10s] [-v] <comando> [opciones]

Comandos:
  turnos       [-fecha AAAA-MM-DD]                      lista de turnos
  mis-turnos   -mail MAIL                               turnos de un cliente
  horarios     -fecha AAAA-MM-DD [-excluir ID]          horarios libres
  calendario   -mes AAAA-MM                             estado de los días del mes
  reservar     -nombre N -mail M -fecha F -hora H -servicio S
  editar       -id ID -fecha F -hora H [-servicio S]
  cancelar     -id ID
  eliminar     -id ID                                   (admin)
  bloquear     -fecha F [-hora H]                       (admin)
  desbloquear  -fecha F [-hora H]                       (admin)
  login        -password P                              imprime el token de sesión
`

var errUsage = errors.New("uso incorrecto")

type app struct {
	client *turnosapi.Client
	store  *store.Store
	out    io.Writer
}

// command подкоманда: разбирает свои флаги и выполняется
type command func(ctx context.Context, a *app, args []string) error

var commands = map[string]command{
	"turnos":      listCmd,
	"mis-turnos":  mineCmd,
	"horarios":    slotsCmd,
	"calendario":  calendarCmd,
	"reservar":    bookCmd,
	"editar":      rescheduleCmd,
	"cancelar":    cancelCmd,
	"eliminar":    deleteCmd,
	"bloquear":    blockCmd,
	"desbloquear": unblockCmd,
	"login":       loginCmd,
}

func run(ctx context.Context, args []string, out io.Writer) error {
	// 1. Глобальные флаги
	global := flag.NewFlagSet("turnos-cli", flag.ContinueOnError)
	global.SetOutput(io.Discard)
	baseURL := global.String("url", envOr("TURNOS_API_URL", "http://localhost:8080"), "")
	token := global.String("token", os.Getenv("TURNOS_TOKEN"), "")
	timeout := global.Duration("timeout", 10*time.Second, "")
	verbose := global.Bool("v", false, "")
	tz := global.String("tz", domain.DefaultTimezone, "")
	if err := global.Parse(args); err != nil || global.NArg() == 0 {
		fmt.Fprint(out, usage)
		return errUsage
	}

	cmd, ok := commands[global.Arg(0)]
	if !ok {
		fmt.Fprint(out, usage)
		return fmt.Errorf("%w: comando desconocido %q", errUsage, global.Arg(0))
	}

	// 2. Клиент и хранилище
	level := "error"
	if *verbose {
		level = "info"
	}
	log, err := logger.New("", level)
	if err != nil {
		return err
	}
	defer log.Close()

	location, err := time.LoadLocation(*tz)
	if err != nil {
		return fmt.Errorf("zona horaria %q: %w", *tz, err)
	}

	client := turnosapi.NewClient(*baseURL, *timeout, log)
	if *token != "" {
		client.SetToken(*token)
	}

	a := &app{client: client, store: store.NewStore(client, location, log), out: out}
	return cmd(ctx, a, global.Args()[1:])
}

func listCmd(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("turnos")
	date := fs.String("fecha", "", "")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	if err := a.store.Refresh(ctx); err != nil {
		return err
	}
	snap := a.store.Snapshot()

	list := snap.Appointments
	if *date != "" {
		day, err := types.ParseDateString(*date)
		if err != nil {
			return fmt.Errorf("%w: %q", availability.ErrInvalidDate, *date)
		}
		list = snap.ByDate(day)
	}
	printAppointments(a.out, list, snap.Policy)
	return nil
}

func mineCmd(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("mis-turnos")
	mail := fs.String("mail", "", "")
	if err := fs.Parse(args); err != nil || *mail == "" {
		return errUsage
	}

	list, err := a.client.ListByEmail(ctx, *mail)
	if err != nil {
		return err
	}
	printAppointments(a.out, list, a.store.Snapshot().Policy)
	return nil
}

func slotsCmd(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("horarios")
	date := fs.String("fecha", "", "")
	exclude := fs.String("excluir", "", "")
	if err := fs.Parse(args); err != nil || *date == "" {
		return errUsage
	}

	day, err := types.ParseDateString(*date)
	if err != nil {
		return fmt.Errorf("%w: %q", availability.ErrInvalidDate, *date)
	}
	if err := a.store.Refresh(ctx); err != nil {
		return err
	}

	slots := a.store.FreeSlots(day, *exclude)
	if len(slots) == 0 {
		fmt.Fprintf(a.out, "%s: sin horarios disponibles (%s)\n", day, a.store.DayStatus(day))
		return nil
	}
	parts := make([]string, len(slots))
	for i, s := range slots {
		parts[i] = s.String()
	}
	fmt.Fprintf(a.out, "%s: %s\n", day, strings.Join(parts, " "))
	return nil
}

func calendarCmd(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("calendario")
	month := fs.String("mes", "", "")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	start, err := time.Parse("2006-01", *month)
	if err != nil {
		return fmt.Errorf("%w: mes %q", errUsage, *month)
	}
	if err := a.store.Refresh(ctx); err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, day := range a.store.Calendar(start) {
		past := ""
		if day.Past {
			past = "pasado"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", day.Date, day.Status, past, joinTimes(day.BlockedTimes))
	}
	return w.Flush()
}

func bookCmd(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("reservar")
	in := &turnosapi.AppointmentInput{}
	fs.StringVar(&in.ClientName, "nombre", "", "")
	fs.StringVar(&in.Mail, "mail", "", "")
	fs.StringVar(&in.Date, "fecha", "", "")
	fs.StringVar(&in.Time, "hora", "", "")
	fs.StringVar(&in.Service, "servicio", string(domain.ServiceCut), "")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	if err := a.store.Refresh(ctx); err != nil {
		return err
	}
	created, err := a.store.Book(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Turno reservado: %s %s %s (id %s)\n", created.Date, created.Time, created.Service, created.ID)
	return nil
}

func rescheduleCmd(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("editar")
	id := fs.String("id", "", "")
	in := &turnosapi.RescheduleInput{}
	fs.StringVar(&in.Date, "fecha", "", "")
	fs.StringVar(&in.Time, "hora", "", "")
	fs.StringVar(&in.Service, "servicio", "", "")
	if err := fs.Parse(args); err != nil || *id == "" {
		return errUsage
	}

	if err := a.store.Refresh(ctx); err != nil {
		return err
	}
	updated, err := a.store.Reschedule(ctx, *id, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Turno actualizado: %s %s %s\n", updated.Date, updated.Time, updated.Service)
	return nil
}

func cancelCmd(ctx context.Context, a *app, args []string) error {
	id, err := parseID("cancelar", args)
	if err != nil {
		return err
	}
	if err := a.store.Refresh(ctx); err != nil {
		return err
	}
	if err := a.store.Cancel(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Turno cancelado")
	return nil
}

func deleteCmd(ctx context.Context, a *app, args []string) error {
	id, err := parseID("eliminar", args)
	if err != nil {
		return err
	}
	if err := a.store.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Turno eliminado")
	return nil
}

func blockCmd(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("bloquear")
	date := fs.String("fecha", "", "")
	at := fs.String("hora", "", "")
	if err := fs.Parse(args); err != nil || *date == "" {
		return errUsage
	}

	var (
		day *domain.BlockedDay
		err error
	)
	if *at == "" {
		day, err = a.store.BlockDay(ctx, *date)
	} else {
		day, err = a.store.BlockTime(ctx, *date, *at)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Bloqueado %s: %s\n", day.Date, joinTimes(day.BlockedTimes))
	return nil
}

func unblockCmd(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("desbloquear")
	date := fs.String("fecha", "", "")
	at := fs.String("hora", "", "")
	if err := fs.Parse(args); err != nil || *date == "" {
		return errUsage
	}

	if err := a.store.Unblock(ctx, *date, *at); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Desbloqueado")
	return nil
}

func loginCmd(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("login")
	password := fs.String("password", "", "")
	if err := fs.Parse(args); err != nil || *password == "" {
		return errUsage
	}

	session, err := a.client.Login(ctx, *password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s\nVálido hasta %s\n", session.Token, session.ExpiresAt.Local().Format("2006-01-02 15:04"))
	return nil
}

// describe текст ошибки для пользователя: сообщение сервера, причина отказа или сама ошибка
func describe(err error) string {
	if reason, ok := availability.LockReason(err); ok {
		return reason
	}
	if msg, ok := turnosapi.Message(err); ok {
		return msg
	}
	switch {
	case errors.Is(err, store.ErrConflict):
		return "El horario ya está ocupado."
	case errors.Is(err, availability.ErrSunday):
		return "Los domingos no se atiende."
	case errors.Is(err, availability.ErrPastDate):
		return "La fecha ya pasó."
	case errors.Is(err, availability.ErrSlotElapsed):
		return "Ese horario ya pasó."
	case errors.Is(err, availability.ErrSlotBlocked):
		return "Ese horario no está disponible."
	case errors.Is(err, availability.ErrNotOnGrid):
		return "Horario inválido."
	case errors.Is(err, availability.ErrInvalidDate):
		return "Fecha inválida."
	case errors.Is(err, turnosapi.ErrUnauthorized):
		return "Se requiere iniciar sesión como administrador."
	case errors.Is(err, turnosapi.ErrTransport):
		return "No se pudo conectar con el servidor."
	}
	return err.Error()
}

func printAppointments(out io.Writer, list []*domain.Appointment, policy availability.Policy) {
	if len(list) == 0 {
		fmt.Fprintln(out, "No hay turnos")
		return
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	now := time.Now()
	for _, appt := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			appt.ID, appt.Date, appt.Time, appt.ClientName, appt.ClientEmail, appt.Service,
			policy.State(appt, now))
	}
	_ = w.Flush()
}

func parseID(name string, args []string) (string, error) {
	fs := newFlagSet(name)
	id := fs.String("id", "", "")
	if err := fs.Parse(args); err != nil || *id == "" {
		return "", errUsage
	}
	return *id, nil
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func joinTimes(times []types.TimeString) string {
	parts := make([]string, len(times))
	for i, t := range times {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
