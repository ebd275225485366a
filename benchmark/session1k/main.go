package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/rand"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"
	sleepGrpc "liyu1981.xyz/sleep-telemetry-service/pkg/grpc"
)

var maxClients int = 1000
var stagesPerSession int = 8
var httpHostPort string = "127.0.0.1:1080"
var grpcHostPort string = "127.0.0.1:10801"

var grpcClient *sleepGrpc.TelemetryServiceClient

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
var rndMu sync.Mutex

func main() {
	clientIDs := make([]string, maxClients)
	for i := 0; i < maxClients; i++ {
		clientIDs[i] = uuid.NewString()
	}
	fmt.Printf("generated %v client IDs\n", maxClients)

	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", httpHostPort))
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	conn, err := grpc.NewClient(grpcHostPort, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatal("Failed to connect to gRPC server:", err)
	}
	defer conn.Close()
	grpcClient = sleepGrpc.NewTelemetryServiceClient(conn)

	fmt.Printf("gRPC client created\n")

	var startTime time.Time
	var usedTime time.Duration

	startTime = time.Now()
	wg := sync.WaitGroup{}
	for i := 0; i < maxClients; i++ {
		i := i
		wg.Add(1)
		go func() {
			postSensorData(clientIDs[i])
			fmt.Printf("\rposted sensor data for client %v", i)
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\rposted sensor data for %v clients: used time=%v seconds, throughput=%v action/second\n",
		maxClients, usedTime.Seconds(), float64(maxClients)/usedTime.Seconds(),
	)

	startTime = time.Now()
	wg = sync.WaitGroup{}
	for i := 0; i < maxClients; i++ {
		i := i
		wg.Add(1)
		go func() {
			runSession(clientIDs[i])
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	actions := maxClients * (2*stagesPerSession + 1)
	fmt.Printf(
		"\n\rran sessions for %v clients: used time=%v seconds, throughput=%v action/second\n",
		maxClients, usedTime.Seconds(), float64(actions)/usedTime.Seconds(),
	)
}

func flipCoin() bool {
	rndMu.Lock()
	defer rndMu.Unlock()
	return rnd.Int31n(100000)%2 == 0
}

func rndFloat64(min, max float64, decimal int) float64 {
	rndMu.Lock()
	val := min + rnd.Float64()*(max-min)
	rndMu.Unlock()
	multiplier := math.Pow10(decimal)
	return math.Round(val*multiplier) / multiplier
}

func rndInt(n int) int {
	rndMu.Lock()
	defer rndMu.Unlock()
	return rnd.Intn(n)
}

func sensorPayload() map[string]any {
	return map[string]any{
		"heart_rate":  rndFloat64(45.0, 90.0, 1),
		"temperature": rndFloat64(35.5, 37.5, 2),
		"snore":       rndInt(5),
		"movement":    rndFloat64(0.0, 1.0, 3),
	}
}

func postSensorData(clientID string) {
	data := sensorPayload()

	if flipCoin() {
		jsonData, _ := json.Marshal(map[string]any{"client": clientID, "data": data})
		resp, err := http.Post(fmt.Sprintf("http://%s/sensor-data", httpHostPort), "application/json", bytes.NewBuffer(jsonData))
		if err != nil {
			fmt.Printf("\nerror: %v\n", err)
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			fmt.Printf("\nresponse status code != 200: %v\n", resp.StatusCode)
		}
	} else {
		req, err := structpb.NewStruct(map[string]any{"client": clientID, "data": data})
		if err != nil {
			panic(err)
		}
		resp, err := grpcClient.IngestSensor(context.Background(), req)
		if err != nil {
			fmt.Printf("\nerror: %v\n", err)
			return
		}
		if !resp.GetFields()["success"].GetBoolValue() {
			fmt.Printf("\nresponse success = false: %v\n", resp)
		}
	}
}

func postStage(clientID string, record map[string]any) {
	if flipCoin() {
		jsonData, _ := json.Marshal(map[string]any{"sleep_data": []any{record}})
		target := fmt.Sprintf("http://%s/sleep-data?client_uuid=%s", httpHostPort, url.QueryEscape(clientID))
		resp, err := http.Post(target, "application/json", bytes.NewBuffer(jsonData))
		if err != nil {
			fmt.Printf("\nerror: %v\n", err)
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			fmt.Printf("\nresponse status code != 200: %v\n", resp.StatusCode)
		}
	} else {
		req, err := structpb.NewStruct(map[string]any{"client_uuid": clientID, "sleep_data": []any{record}})
		if err != nil {
			panic(err)
		}
		resp, err := grpcClient.IngestSleepStages(context.Background(), req)
		if err != nil {
			fmt.Printf("\nerror: %v\n", err)
			return
		}
		if !resp.GetFields()["success"].GetBoolValue() {
			fmt.Printf("\nresponse success = false: %v\n", resp)
		}
	}
}

// runSession interleaves sensor readings with stage records and flags the
// last stage as the end of the session.
func runSession(clientID string) {
	sessionID := uuid.NewString()
	start := time.Now().Unix()

	for i := 0; i < stagesPerSession; i++ {
		end := start + int64(60+rndInt(600))
		record := map[string]any{
			"sessionId": sessionID,
			"startTime": start,
			"endTime":   end,
			"stage":     rndInt(4),
		}
		if i == stagesPerSession-1 {
			record["end"] = true
		}

		postSensorData(clientID)
		postStage(clientID, record)
		fmt.Printf("\rposted stage %v of session %v", i, sessionID)

		start = end
		time.Sleep(time.Duration(100+rndInt(1000)) * time.Millisecond)
	}

	resp, err := http.Get(fmt.Sprintf("http://%s/sleep-stages?session_uuid=%s", httpHostPort, sessionID))
	if err != nil {
		fmt.Printf("\nerror: %v\n", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("\nresponse status code != 200: %v\n", resp.StatusCode)
	}
}
