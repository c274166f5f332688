package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	awsSession "github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/go-kit/kit/log"
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/core"
	handler "github.com/DebugSensei/Discord-Invitation-Tracker-Bot/handler/http"
	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/platform/cache"
	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/platform/chat"
	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/platform/limiter"
	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/platform/metrics"
	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/platform/redis"
	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/service/event"
	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/service/invite"
	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/service/joined"
	"github.com/DebugSensei/Discord-Invitation-Tracker-Bot/service/total"
)

// Logging and telemetry identifiers.
const (
	component        = "tracker"
	namespaceCache   = "cache"
	namespaceService = "service"
	namespaceSource  = "source"
	subsystemHit     = "hit"
	subsystemQueue   = "queue"
	serviceTotalNets = "total_nets"
	storeCache       = "redis"
	storeService     = "postgres"
)

// Versions.
const (
	versionCurrent = "0.1"
)

// Supported source types.
const (
	sourceNop = "nop"
	sourceSQS = "sqs"
)

// Prefixes.
const (
	prefixRateLimiter = "ratelimiter:client:"
)

// Timeouts
const (
	defaultReadTimeout  = 2 * time.Second
	defaultWriteTimeout = 3 * time.Second
)

// Buildtime vars.
var (
	revision = "0000000-dev"
)

func main() {
	var (
		begin = time.Now()

		awsID         = flag.String("aws.id", "", "Identifier for AWS requests")
		awsRegion     = flag.String("aws.region", "us-east-1", "AWS Region to operate in")
		awsSecret     = flag.String("aws.secret", "", "Identification secret for AWS requests")
		chatAPI       = flag.String("chat.api", "https://discord.com/api/v10", "Base URL of the chat platform REST API")
		chatToken     = flag.String("chat.token", "", "Bot token used against the chat platform, in-memory platform when unset")
		fakeCalendar  = flag.Bool("fake.calendar", true, "Classify fake joins by day-of-month delta inside the creation month")
		fakeWindow    = flag.Int("fake.window", 7, "Account age in days below which a join counts as fake")
		listenAddr    = flag.String("listen.addr", ":8083", "HTTP bind address for the query API")
		postgresURL   = flag.String("postgres.url", "", "Postgres URL to connect to")
		rateLimit     = flag.Int64("ratelimit", 60, "Requests per minute per client")
		redisAddr     = flag.String("redis.addr", ":6379", "Redis address to connect to")
		roleHelper    = flag.Uint64("role.helper", 0, "Role id rewarding the helper tier")
		roleLegend    = flag.Uint64("role.legend", 0, "Role id rewarding the legend tier")
		roleSupporter = flag.Uint64("role.supporter", 0, "Role id rewarding the supporter tier")
		source        = flag.String("source", sourceNop, "Source type used for platform event consumption")
		telemetryAddr = flag.String("telemetry.addr", ":9000", "HTTP bind address where prometheus telemetry is exposed")
	)
	flag.Parse()

	// Setup logging.
	logger := log.With(
		log.NewJSONLogger(os.Stdout),
		"caller", log.Caller(3),
		"component", component,
		"revision", revision,
	)

	hostname, err := os.Hostname()
	if err != nil {
		logger.Log("err", err, "lifecycle", "abort")
	}

	logger = log.With(logger, "host", hostname)

	// Setup instrumentation.
	go func(addr string) {
		logger.Log(
			"duration", time.Since(begin).Nanoseconds(),
			"lifecycle", "start",
			"listen", addr,
			"sub", "telemetry",
		)

		http.Handle("/metrics", promhttp.Handler())

		err := http.ListenAndServe(addr, nil)
		if err != nil {
			logger.Log("err", err, "lifecycle", "abort", "sub", "telemetry")
			os.Exit(1)
		}
	}(*telemetryAddr)

	cacheFieldKeys := []string{
		metrics.FieldComponent,
		metrics.FieldMethod,
		metrics.FieldNamespace,
		metrics.FieldService,
		metrics.FieldStore,
	}

	cacheErrCount, cacheOpCount, cacheOpLatency := metrics.KeyMetrics(
		namespaceCache,
		cacheFieldKeys...,
	)

	cacheHitCount := kitprometheus.NewCounterFrom(prometheus.CounterOpts{
		Namespace: namespaceCache,
		Subsystem: subsystemHit,
		Name:      "count",
		Help:      "Number of cache hits",
	}, cacheFieldKeys)

	serviceErrCount, serviceOpCount, serviceOpLatency := metrics.KeyMetrics(
		namespaceService,
		metrics.FieldComponent,
		metrics.FieldMethod,
		metrics.FieldNamespace,
		metrics.FieldService,
		metrics.FieldStore,
	)

	sourceFieldKeys := []string{
		metrics.FieldComponent,
		metrics.FieldMethod,
		metrics.FieldNamespace,
		metrics.FieldSource,
		metrics.FieldStore,
	}

	sourceErrCount, sourceOpCount, sourceOpLatency := metrics.KeyMetrics(
		namespaceSource,
		sourceFieldKeys...,
	)

	sourceQueueLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespaceSource,
			Subsystem: subsystemQueue,
			Name:      "latency_seconds",
			Help:      "Distribution of message queue latency in seconds",
			Buckets:   metrics.BucketsQueue,
		},
		sourceFieldKeys,
	)
	prometheus.MustRegister(sourceQueueLatency)

	// Setup clients.
	var (
		aSession = awsSession.New(&aws.Config{
			Credentials: credentials.NewStaticCredentials(*awsID, *awsSecret, ""),
			Region:      aws.String(*awsRegion),
		})
		redisPool   = redis.Pool(*redisAddr, "")
		rateLimiter = limiter.Redis(redisPool, prefixRateLimiter)
		sqsAPI      = sqs.New(aSession)
	)

	pgClient, err := sqlx.Connect(storeService, *postgresURL)
	if err != nil {
		logger.Log("err", err, "lifecycle", "abort")
		os.Exit(1)
	}

	// Setup caches.
	var netsCache cache.CountService
	netsCache = cache.RedisCountService(redisPool)
	netsCache = cache.InstrumentCountServiceMiddleware(
		component,
		serviceTotalNets,
		storeCache,
		cacheErrCount,
		cacheHitCount,
		cacheOpCount,
		cacheOpLatency,
	)(netsCache)

	// Setup sources.
	var eventSource event.Source

	switch *source {
	case sourceNop:
		eventSource = event.NopSource()
	case sourceSQS:
		eventSource, err = event.SQSSource(sqsAPI)
		if err != nil {
			logger.Log("err", err, "lifecycle", "abort")
			os.Exit(1)
		}
	default:
		logger.Log(
			"err", fmt.Sprintf("Source type '%s' not supported", *source),
			"lifecycle", "abort",
		)
		os.Exit(1)
	}

	eventSource = event.InstrumentSourceMiddleware(
		component,
		*source,
		sourceErrCount,
		sourceOpCount,
		sourceOpLatency,
		sourceQueueLatency,
	)(eventSource)
	eventSource = event.LogSourceMiddleware(*source, logger)(eventSource)

	// Setup services.
	var invites invite.Service
	invites = invite.PostgresService(pgClient)
	invites = invite.InstrumentServiceMiddleware(
		component,
		storeService,
		serviceErrCount,
		serviceOpCount,
		serviceOpLatency,
	)(invites)
	invites = invite.LogServiceMiddleware(logger, storeService)(invites)

	var joins joined.Service
	joins = joined.PostgresService(pgClient)
	joins = joined.InstrumentServiceMiddleware(
		component,
		storeService,
		serviceErrCount,
		serviceOpCount,
		serviceOpLatency,
	)(joins)
	joins = joined.LogServiceMiddleware(logger, storeService)(joins)

	var totals total.Service
	totals = total.PostgresService(pgClient)
	totals = total.InstrumentServiceMiddleware(
		component,
		storeService,
		serviceErrCount,
		serviceOpCount,
		serviceOpLatency,
	)(totals)
	totals = total.LogServiceMiddleware(logger, storeService)(totals)
	// Keep standings hot, tier decisions read them on every event.
	totals = total.CacheServiceMiddleware(netsCache)(totals)

	// Setup chat platform collaborator.
	var platform chat.Service

	if *chatToken == "" {
		platform = chat.NewMemService()
		platform = chat.LogMiddleware(logger, "mem")(platform)
	} else {
		platform = chat.RESTService(*chatAPI, *chatToken)
		platform = chat.LogMiddleware(logger, "rest")(platform)
	}

	// Setup core.
	var (
		locks  = core.NewCommunityLocks()
		policy = core.AgePolicy{
			Calendar:   *fakeCalendar,
			WindowDays: *fakeWindow,
		}
		ranks = core.Ranks{
			Supporter: *roleSupporter,
			Helper:    *roleHelper,
			Legend:    *roleLegend,
		}

		guildSetup    = core.GuildSetup(invites, locks)
		guildTeardown = core.GuildTeardown(invites, joins, totals, locks)
		inviteCounts  = core.InviteCounts(totals)
		inviteCreate  = core.InviteCreate(invites, locks)
		inviteDelete  = core.InviteDelete(invites, locks)
		memberJoin    = core.MemberJoin(invites, joins, totals, locks, policy)
		memberLeave   = core.MemberLeave(joins, totals)
		tierSync      = logTierSync(logger, core.TierSync(totals, platform, ranks))
		topInviters   = core.TopInviters(totals, platform)
	)

	// Consume platform events.
	go consumeEvents(
		log.With(logger, "sub", "consume"),
		eventSource,
		memberJoin,
		memberLeave,
		inviteCreate,
		inviteDelete,
		guildSetup,
		guildTeardown,
		tierSync,
	)

	// Setup middlewares.
	withGlobal := handler.Chain(
		handler.CtxPrepare(versionCurrent),
		handler.Log(logger),
		handler.Instrument(component),
		handler.SecureHeaders(),
		handler.RateLimit(rateLimiter, *rateLimit),
	)

	// Setup Router.
	router := mux.NewRouter().StrictSlash(true)

	router.Methods("GET").Path(`/health-45016490610398192`).Name("healthcheck").HandlerFunc(
		handler.Wrap(
			handler.CtxPrepare(versionCurrent),
			handler.Health(pgClient, redisPool),
		),
	)

	router.Methods("GET").Path(`/guilds/{guildID:[0-9]+}/members/{memberID:[0-9]+}/invites`).Name("inviteCounts").HandlerFunc(
		handler.Wrap(
			withGlobal,
			handler.InviteCounts(inviteCounts, tierSync),
		),
	)

	router.Methods("GET").Path(`/guilds/{guildID:[0-9]+}/leaderboard`).Name("leaderboard").HandlerFunc(
		handler.Wrap(
			withGlobal,
			handler.Leaderboard(topInviters),
		),
	)

	// Setup server.
	server := &http.Server{
		Addr:         *listenAddr,
		Handler:      router,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
	}

	logger.Log(
		"duration", time.Since(begin).Nanoseconds(),
		"lifecycle", "start",
		"listen", *listenAddr,
		"sub", "api",
	)

	err = server.ListenAndServe()
	if err != nil {
		logger.Log("err", err, "lifecycle", "abort", "sub", "api")
		os.Exit(1)
	}
}

// logTierSync logs failed role convergence and drops the error, a missed
// grant is corrected by the next sync of the member.
func logTierSync(logger log.Logger, next core.TierSyncFunc) core.TierSyncFunc {
	return func(guildID, memberID uint64) error {
		err := next(guildID, memberID)
		if err != nil {
			logger.Log(
				"err", err,
				"guild_id", guildID,
				"member_id", memberID,
				"sub", "tiersync",
			)
		}

		return nil
	}
}
