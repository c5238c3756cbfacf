package streaming

// LevelOneEquities builds a StreamRequest for the LEVELONE_EQUITIES
// service. An empty fields list expands to the full dense field range
// (0..51 inclusive) rather than subscribing with no fields at all.
func LevelOneEquities(keys []string, fields []LevelOneEquitiesField, command Command) StreamRequest {
	fieldStrs := allFields(int(equityFieldCount))
	if len(fields) > 0 {
		fieldStrs = fieldStrings(fields)
	}
	return StreamRequest{Service: ServiceLevelOneEquities, Command: command, Keys: keys, Fields: fieldStrs}
}

// LevelOneOptions builds a StreamRequest for the LEVELONE_OPTIONS
// service, with the same empty-fields expansion rule (0..55 inclusive).
func LevelOneOptions(keys []string, fields []LevelOneOptionsField, command Command) StreamRequest {
	fieldStrs := allFields(int(optionFieldCount))
	if len(fields) > 0 {
		fieldStrs = fieldStrings(fields)
	}
	return StreamRequest{Service: ServiceLevelOneOptions, Command: command, Keys: keys, Fields: fieldStrs}
}

// LevelOneFutures builds a StreamRequest for the LEVELONE_FUTURES
// service (0..40 inclusive when fields is empty).
func LevelOneFutures(keys []string, fields []LevelOneFuturesField, command Command) StreamRequest {
	fieldStrs := allFields(int(futureFieldCount))
	if len(fields) > 0 {
		fieldStrs = fieldStrings(fields)
	}
	return StreamRequest{Service: ServiceLevelOneFutures, Command: command, Keys: keys, Fields: fieldStrs}
}

// LevelOneFuturesOptions builds a StreamRequest for the
// LEVELONE_FUTURES_OPTIONS service (0..31 inclusive when fields is
// empty).
func LevelOneFuturesOptions(keys []string, fields []LevelOneFuturesOptionsField, command Command) StreamRequest {
	fieldStrs := allFields(int(futureOptionFieldCount))
	if len(fields) > 0 {
		fieldStrs = fieldStrings(fields)
	}
	return StreamRequest{Service: ServiceLevelOneFuturesOptions, Command: command, Keys: keys, Fields: fieldStrs}
}

// LevelOneForex builds a StreamRequest for the LEVELONE_FOREX service
// (0..29 inclusive when fields is empty).
func LevelOneForex(keys []string, fields []LevelOneForexField, command Command) StreamRequest {
	fieldStrs := allFields(int(forexFieldCount))
	if len(fields) > 0 {
		fieldStrs = fieldStrings(fields)
	}
	return StreamRequest{Service: ServiceLevelOneForex, Command: command, Keys: keys, Fields: fieldStrs}
}
